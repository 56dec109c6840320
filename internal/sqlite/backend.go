// Package sqlite implements the SQLite storage backend for shelf.
// Blobs are rows of a single table in DataDir/shelf.db; Commit runs all of
// its writes in one transaction.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/internal/kvsql"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Database file and table names.
const (
	dbFileName = "shelf.db"
	tableName  = "kv"
)

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend on an embedded SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	stmts    kvsql.Statements
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		stmts: kvsql.New(kvsql.DialectSQLite, tableName),
	}
}

// Attach opens DataDir/shelf.db, creating DataDir and the blob table when
// missing. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps writes serialized at the driver.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(b.stmts.CreateTable()); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if err := b.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.db = nil
	b.attached = false
	return nil
}

// Get returns the blob stored under key.
func (b *Backend) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, types.ErrInvalidKey
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", false, types.ErrNotAttached
	}

	stmt, err := b.stmts.SelectValue(key)
	if err != nil {
		return "", false, err
	}
	var value string
	err = b.db.QueryRow(stmt.SQL, stmt.Args...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key.
func (b *Backend) Set(key, value string) error {
	return b.Commit([]types.Write{{Key: key, Value: value}})
}

// Remove deletes key.
func (b *Backend) Remove(key string) error {
	return b.Commit([]types.Write{{Key: key, Remove: true}})
}

// Commit applies writes in a single transaction; on any failure no write
// is visible.
func (b *Backend) Commit(writes []types.Write) error {
	stmts, err := b.stmts.Plan(writes)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrNotAttached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range stmts {
		if _, err := tx.Exec(s.SQL, s.Args...); err != nil {
			return fmt.Errorf("applying write: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing writes: %w", err)
	}
	return nil
}
