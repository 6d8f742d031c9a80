package limits

// Size limits for files read from disk

const (
	// Document is the largest registry document Store will read (8MB)
	Document = 8 << 20

	// ImportFile is the largest environment definition accepted by import (1MB)
	ImportFile = 1 << 20
)
