package registry

import "errors"

var (
	// ErrNotFound indicates the environment name doesn't exist
	ErrNotFound = errors.New("environment not found")
	// ErrAlreadyExists indicates the name is already registered
	ErrAlreadyExists = errors.New("environment already exists")
	// ErrCorrupt indicates the registry document could not be parsed
	ErrCorrupt = errors.New("registry document is corrupt")
	// ErrIO indicates a read or write failure on the registry document
	ErrIO = errors.New("registry i/o failure")
	// ErrValidation indicates malformed input
	ErrValidation = errors.New("invalid environment")
)
