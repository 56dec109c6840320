package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestStats(t *testing.T) {
	lib, _ := setupLibrary(t)

	st, err := lib.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalBooks: 0, BorrowedBooks: 0, User: GuestName}, st)

	addBooks(t, lib.Catalog, dune, emma, hobbit)
	require.NoError(t, lib.Session.Login("alice"))
	require.NoError(t, lib.Borrow("222"))

	st, err = lib.Stats()
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalBooks: 3, BorrowedBooks: 1, User: "alice"}, st)
}

func TestImportTextRoundTrip(t *testing.T) {
	lib, _ := setupLibrary(t)
	addBooks(t, lib.Catalog, dune, emma)
	require.NoError(t, lib.Session.Login("alice"))
	require.NoError(t, lib.Borrow("111"))

	text, err := lib.ExportText()
	require.NoError(t, err)
	original, err := lib.Catalog.ListAll()
	require.NoError(t, err)

	fresh, _ := setupLibrary(t)
	n, err := fresh.ImportText(text)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	imported, err := fresh.Catalog.ListAll()
	require.NoError(t, err)
	assert.Equal(t, original, imported)
}

func TestExportRefusesEmptyCatalog(t *testing.T) {
	lib, _ := setupLibrary(t)

	_, err := lib.ExportText()
	assert.ErrorIs(t, err, types.ErrEmptyCatalog)
	_, err = lib.ExportPrintable()
	assert.ErrorIs(t, err, types.ErrEmptyCatalog)
}
