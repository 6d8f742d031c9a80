package cmd

import (
	"errors"

	"github.com/gurisko/envswitch/internal/config"
	"github.com/gurisko/envswitch/internal/registry"
)

// Process exit codes
const (
	ExitOK            = 0
	ExitError         = 1
	ExitNotFound      = 2
	ExitInvalidConfig = 3
)

// ExitCode maps an error returned by Execute to a process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, registry.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, config.ErrInvalidConfig):
		return ExitInvalidConfig
	default:
		return ExitError
	}
}
