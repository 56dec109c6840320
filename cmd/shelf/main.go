// Package main provides the shelf CLI, a single-user library catalog and
// lending tracker.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/mesh-intelligence/shelf/pkg/shelf"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errUsage marks command-line mistakes that cobra does not catch itself.
var errUsage = errors.New("usage error")

func main() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(shelf.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode classifies err: mistakes the user can fix exit 1, everything
// else (storage, filesystem) exits 2.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrValidation),
		errors.Is(err, types.ErrBookNotFound),
		errors.Is(err, types.ErrLoan),
		errors.Is(err, types.ErrDuplicateISBN),
		errors.Is(err, types.ErrEmptyCatalog),
		errors.Is(err, types.ErrBackendEmpty),
		errors.Is(err, types.ErrBackendUnknown),
		errors.Is(err, types.ErrDSNEmpty),
		errors.Is(err, errUsage):
		return exitUserError
	default:
		return exitSysError
	}
}
