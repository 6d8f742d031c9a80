package registry

import "github.com/google/uuid"

// GenerateHistoryID generates a new unique history entry ID using UUID v4
func GenerateHistoryID() string {
	return uuid.New().String()
}
