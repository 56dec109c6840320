// Package postgres implements a storage backend on a PostgreSQL table,
// for catalogs kept on a shared database server. Commit runs in one
// transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mesh-intelligence/shelf/internal/kvsql"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	tableName      = "shelf_kv"
	defaultTimeout = 10 * time.Second
)

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend on a pgx connection pool.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	pool     *pgxpool.Pool
	stmts    kvsql.Statements
	timeout  time.Duration
}

// NewBackend creates a new Postgres backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{
		stmts:   kvsql.New(kvsql.DialectPostgres, tableName),
		timeout: defaultTimeout,
	}
}

func (b *Backend) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.timeout)
}

// Attach connects to config.PostgresDSN and creates the blob table if it
// does not exist.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	ctx, cancel := b.opContext()
	defer cancel()

	pool, err := pgxpool.New(ctx, config.PostgresDSN)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, b.stmts.CreateTable()); err != nil {
		pool.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	b.pool = pool
	b.attached = true
	return nil
}

// Detach closes the pool. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.pool.Close()
	b.pool = nil
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

	ctx, cancel := b.opContext()
	defer cancel()

	var value string
	err = b.pool.QueryRow(ctx, stmt.SQL, stmt.Args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
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

// Commit applies writes in one transaction.
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

	ctx, cancel := b.opContext()
	defer cancel()

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range stmts {
		if _, err := tx.Exec(ctx, s.SQL, s.Args...); err != nil {
			return fmt.Errorf("applying write: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing writes: %w", err)
	}
	return nil
}
