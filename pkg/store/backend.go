// Package store provides the public factory for shelf storage backends.
// Implementations stay internal; callers select one by name.
package store

import (
	"github.com/mesh-intelligence/shelf/internal/files"
	"github.com/mesh-intelligence/shelf/internal/postgres"
	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// NewBackend creates an unattached backend for the named implementation.
// Returns ErrBackendEmpty or ErrBackendUnknown for bad names.
//
// Example:
//
//	backend, err := store.NewBackend(types.BackendSQLite)
//	if err != nil {
//	    return err
//	}
//	err = backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".shelf-db",
//	})
//	defer backend.Detach()
func NewBackend(name string) (types.Backend, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendFiles:
		return files.NewBackend(), nil
	case types.BackendPostgres:
		return postgres.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, types.ErrBackendUnknown
	}
}

// Open creates and attaches the backend described by config.
func Open(config types.Config) (types.Backend, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	backend, err := NewBackend(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := backend.Attach(config); err != nil {
		return nil, err
	}
	return backend, nil
}
