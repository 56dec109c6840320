package types

import "errors"

// Persistence keys. Each key addresses one independently stored blob.
const (
	KeyUser     = "user"
	KeyBooks    = "books"
	KeyBorrowed = "borrowed"
)

// Write is a single key mutation inside a Commit. When Remove is set the key
// is deleted and Value is ignored.
type Write struct {
	Key    string
	Value  string
	Remove bool
}

// Store is the persistence adapter: named string blobs with last-write-wins
// semantics.
type Store interface {
	// Get returns the blob stored under key. ok is false when the key is
	// absent; that is not an error.
	Get(key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key succeeds.
	Remove(key string) error

	// Commit applies all writes as one unit. Backends with transactions
	// apply all or none; the file backend applies them in order.
	Commit(writes []Write) error
}

// Backend is a Store with an explicit lifecycle. Callers attach to a backend,
// use it as a Store, and detach when done.
type Backend interface {
	Store

	// Attach connects the backend described by config. Creates DataDir if
	// it does not exist. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, store operations return ErrNotAttached.
	Detach() error
}

// Backend lifecycle and key errors.
var (
	ErrNotAttached     = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrInvalidKey      = errors.New("invalid store key")
)
