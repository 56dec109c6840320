// Package kvsql builds the SQL statements shared by the SQL-backed stores.
// Blobs live in a two-column table keyed by name; a write is expressed as a
// delete followed by an insert so the same plan runs on every dialect.
package kvsql

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Dialect names understood by New.
const (
	DialectSQLite   = "sqlite3"
	DialectPostgres = "postgres"
)

const (
	colKey   = "blob_key"
	colValue = "blob_value"
)

// Stmt is a rendered statement with its bound arguments.
type Stmt struct {
	SQL  string
	Args []any
}

// Statements renders blob-table statements for one dialect and table.
type Statements struct {
	dialect goqu.DialectWrapper
	table   string
}

// New returns a statement builder for the named goqu dialect and table.
func New(dialect, table string) Statements {
	return Statements{dialect: goqu.Dialect(dialect), table: table}
}

// CreateTable returns the DDL for the blob table. goqu has no DDL builder,
// so this is the one hand-written statement.
func (s Statements) CreateTable() string {
	return fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (%s TEXT PRIMARY KEY, %s TEXT NOT NULL)`,
		s.table, colKey, colValue,
	)
}

// SelectValue renders the lookup of a single blob.
func (s Statements) SelectValue(key string) (Stmt, error) {
	query, args, err := s.dialect.
		From(s.table).
		Select(colValue).
		Where(goqu.C(colKey).Eq(key)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Stmt{}, fmt.Errorf("building select for %s: %w", key, err)
	}
	return Stmt{SQL: query, Args: args}, nil
}

// Plan renders the statements that apply writes in order.
func (s Statements) Plan(writes []types.Write) ([]Stmt, error) {
	stmts := make([]Stmt, 0, 2*len(writes))
	for _, w := range writes {
		if w.Key == "" {
			return nil, types.ErrInvalidKey
		}
		del, args, err := s.dialect.
			Delete(s.table).
			Where(goqu.C(colKey).Eq(w.Key)).
			Prepared(true).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("building delete for %s: %w", w.Key, err)
		}
		stmts = append(stmts, Stmt{SQL: del, Args: args})
		if w.Remove {
			continue
		}
		ins, args, err := s.dialect.
			Insert(s.table).
			Rows(goqu.Record{colKey: w.Key, colValue: w.Value}).
			Prepared(true).
			ToSQL()
		if err != nil {
			return nil, fmt.Errorf("building insert for %s: %w", w.Key, err)
		}
		stmts = append(stmts, Stmt{SQL: ins, Args: args})
	}
	return stmts, nil
}
