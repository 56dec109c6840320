package library

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/sqlite"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

var fixedNow = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

// setupStore attaches a SQLite backend in a temp directory.
func setupStore(t *testing.T) types.Store {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// setupLibrary opens a library with a fixed clock over a fresh store.
func setupLibrary(t *testing.T, opts ...Option) (*Library, types.Store) {
	t.Helper()
	store := setupStore(t)
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	lib, err := Open(store, opts...)
	require.NoError(t, err)
	return lib, store
}

func addBooks(t *testing.T, c *Catalog, inputs ...types.BookInput) {
	t.Helper()
	for _, in := range inputs {
		require.NoError(t, c.Add(in))
	}
}

// requireConsistent checks that every book is available exactly when no
// loan carries its isbn, and that no isbn is lent twice.
func requireConsistent(t *testing.T, lib *Library) {
	t.Helper()
	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	loans, err := lib.Ledger.ListActive()
	require.NoError(t, err)

	lent := map[string]int{}
	for _, l := range loans {
		lent[l.ISBN]++
	}
	for isbn, n := range lent {
		require.LessOrEqual(t, n, 1, "isbn %s lent %d times", isbn, n)
	}
	for _, b := range books {
		require.Equal(t, lent[b.ISBN] == 0, b.Available, "book %s", b.ISBN)
	}
}

var (
	dune   = types.BookInput{Title: "Dune", Author: "Frank Herbert", ISBN: "111", Genre: "SF"}
	emma   = types.BookInput{Title: "Emma", Author: "Jane Austen", ISBN: "222", Genre: "Classic"}
	hobbit = types.BookInput{Title: "The Hobbit", Author: "J.R.R. Tolkien", ISBN: "333", Genre: "Fantasy"}
)

var errCommitFailed = errors.New("commit failed")

// failingStore reads through to a real store but refuses every Commit once
// fail is set.
type failingStore struct {
	types.Store
	fail bool
}

func (s *failingStore) Commit(writes []types.Write) error {
	if s.fail {
		return errCommitFailed
	}
	return s.Store.Commit(writes)
}

func (s *failingStore) Set(key, value string) error {
	return s.Commit([]types.Write{{Key: key, Value: value}})
}

func (s *failingStore) Remove(key string) error {
	return s.Commit([]types.Write{{Key: key, Remove: true}})
}

// setupFailingLibrary opens a library whose store can be switched to
// refuse writes.
func setupFailingLibrary(t *testing.T) (*Library, *failingStore) {
	t.Helper()
	store := &failingStore{Store: setupStore(t)}
	lib, err := Open(store, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return lib, store
}

// snapshot returns the stored books and loans.
func snapshot(t *testing.T, lib *Library) ([]types.Book, []types.Loan) {
	t.Helper()
	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	loans, err := lib.Ledger.ListActive()
	require.NoError(t, err)
	return books, loans
}
