// Package files implements a storage backend that keeps each blob in its own
// JSON file under DataDir. Every file write is atomic; a Commit spanning
// several keys is applied file by file and is not atomic as a whole.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

const fileExt = ".json"

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend on plain files.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dir      string
}

// NewBackend creates a new file backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach creates DataDir if needed and binds the backend to it.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dir := config.DataDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	b.dir = dir
	b.attached = true
	return nil
}

// Detach unbinds the backend. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	return nil
}

// path maps a key to its file. Keys may not contain path separators.
func (b *Backend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", types.ErrInvalidKey
	}
	return filepath.Join(b.dir, key+fileExt), nil
}

// Get reads the blob file for key.
func (b *Backend) Get(key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	path, err := b.path(key)
	if err != nil {
		return "", false, err
	}
	if !b.attached {
		return "", false, types.ErrNotAttached
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set atomically replaces the blob file for key.
func (b *Backend) Set(key, value string) error {
	return b.Commit([]types.Write{{Key: key, Value: value}})
}

// Remove deletes the blob file for key.
func (b *Backend) Remove(key string) error {
	return b.Commit([]types.Write{{Key: key, Remove: true}})
}

// Commit applies writes in order. A failure stops the commit; writes
// already applied stay applied.
func (b *Backend) Commit(writes []types.Write) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, w := range writes {
		if _, err := b.path(w.Key); err != nil {
			return err
		}
	}
	if !b.attached {
		return types.ErrNotAttached
	}

	for _, w := range writes {
		path, _ := b.path(w.Key)
		if w.Remove {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("removing %s: %w", w.Key, err)
			}
			continue
		}
		if err := writeFileAtomic(path, []byte(w.Value)); err != nil {
			return fmt.Errorf("writing %s: %w", w.Key, err)
		}
	}
	return nil
}
