package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestCatalogListAllEmpty(t *testing.T) {
	lib, _ := setupLibrary(t)

	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestCatalogAdd(t *testing.T) {
	tests := []struct {
		name    string
		input   types.BookInput
		wantErr string
		want    types.Book
	}{
		{
			name:  "trims fields and marks available",
			input: types.BookInput{Title: "  Dune ", Author: " Frank Herbert", ISBN: "111 ", Genre: " SF "},
			want:  types.Book{Title: "Dune", Author: "Frank Herbert", ISBN: "111", Genre: "SF", Available: true},
		},
		{
			name:  "genre is optional",
			input: types.BookInput{Title: "Emma", Author: "Jane Austen", ISBN: "222"},
			want:  types.Book{Title: "Emma", Author: "Jane Austen", ISBN: "222", Available: true},
		},
		{
			name:    "missing title",
			input:   types.BookInput{Title: "   ", Author: "A", ISBN: "1"},
			wantErr: "title is required",
		},
		{
			name:    "missing author",
			input:   types.BookInput{Title: "T", ISBN: "1"},
			wantErr: "author is required",
		},
		{
			name:    "missing isbn",
			input:   types.BookInput{Title: "T", Author: "A", ISBN: "\t"},
			wantErr: "isbn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, _ := setupLibrary(t)

			err := lib.Catalog.Add(tt.input)
			books, listErr := lib.Catalog.ListAll()
			require.NoError(t, listErr)

			if tt.wantErr != "" {
				require.ErrorIs(t, err, types.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Empty(t, books)
				return
			}
			require.NoError(t, err)
			require.Len(t, books, 1)
			assert.Equal(t, tt.want, books[0])
		})
	}
}

func TestCatalogAddKeepsOrderAndDuplicates(t *testing.T) {
	lib, _ := setupLibrary(t)
	addBooks(t, lib.Catalog, dune, emma, dune)

	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, []string{"111", "222", "111"}, []string{books[0].ISBN, books[1].ISBN, books[2].ISBN})
}

func TestCatalogAddUniqueISBN(t *testing.T) {
	lib, _ := setupLibrary(t, WithUniqueISBN(true))
	addBooks(t, lib.Catalog, dune)

	err := lib.Catalog.Add(types.BookInput{Title: "Other", Author: "Someone", ISBN: " 111 "})
	require.ErrorIs(t, err, types.ErrDuplicateISBN)

	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestCatalogSearch(t *testing.T) {
	lib, _ := setupLibrary(t)
	addBooks(t, lib.Catalog,
		dune, emma, hobbit,
		types.BookInput{Title: "Codes", Author: "Anon", ISBN: "97X-abc"},
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query returns all", query: "", want: []string{"111", "222", "333", "97X-abc"}},
		{name: "title ignores case", query: "DUNE", want: []string{"111"}},
		{name: "author ignores case", query: "austen", want: []string{"222"}},
		{name: "substring across fields", query: "the", want: []string{"333"}},
		{name: "isbn substring", query: "22", want: []string{"222"}},
		{name: "isbn lower-case part matches either case query", query: "ABC", want: []string{"97X-abc"}},
		{name: "isbn upper-case part never matches", query: "97X", want: []string{}},
		{name: "no match", query: "zzz", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lib.Catalog.Search(tt.query)
			require.NoError(t, err)
			isbns := []string{}
			for _, b := range got {
				isbns = append(isbns, b.ISBN)
			}
			assert.Equal(t, tt.want, isbns)
		})
	}
}

func TestCatalogFind(t *testing.T) {
	lib, _ := setupLibrary(t)
	addBooks(t, lib.Catalog, dune)

	b, err := lib.Catalog.Find("111")
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)

	_, err = lib.Catalog.Find("999")
	assert.ErrorIs(t, err, types.ErrBookNotFound)
}

func TestCatalogSetAvailability(t *testing.T) {
	lib, _ := setupLibrary(t)
	addBooks(t, lib.Catalog, dune, emma, dune)

	require.NoError(t, lib.Catalog.SetAvailability("111", false))
	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	assert.False(t, books[0].Available)
	assert.True(t, books[1].Available)
	assert.False(t, books[2].Available)

	err = lib.Catalog.SetAvailability("999", false)
	assert.ErrorIs(t, err, types.ErrBookNotFound)
}

func TestCatalogDeleteAll(t *testing.T) {
	lib, store := setupLibrary(t)
	addBooks(t, lib.Catalog, dune, emma)
	require.NoError(t, lib.Session.Login("alice"))
	require.NoError(t, lib.Borrow("111"))

	require.NoError(t, lib.Catalog.DeleteAll())

	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	assert.Empty(t, books)
	loans, err := lib.Ledger.ListActive()
	require.NoError(t, err)
	assert.Empty(t, loans)

	_, ok, err := store.Get(types.KeyBorrowed)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting an empty catalog is fine, and the session survives.
	require.NoError(t, lib.Catalog.DeleteAll())
	user, ok := lib.Session.CurrentUser()
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
}

func TestCatalogBulkImport(t *testing.T) {
	lib, _ := setupLibrary(t)
	addBooks(t, lib.Catalog, dune)

	n, err := lib.Catalog.BulkImport([]types.BookInput{
		{Title: "Emma", Author: "Jane Austen", ISBN: "222", Genre: "Classic", Available: true},
		{Title: "Dune", Author: "Frank Herbert", ISBN: "111", Genre: "SF", Available: false},
		{Title: "No Genre", Author: "X", ISBN: "444"},
		{Title: "", Author: "X", ISBN: "555", Genre: "G"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	books, err := lib.Catalog.ListAll()
	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "222", books[1].ISBN)
	assert.True(t, books[1].Available)
	assert.Equal(t, "111", books[2].ISBN)
	assert.False(t, books[2].Available)
}

func TestCatalogBulkImportNothing(t *testing.T) {
	lib, store := setupLibrary(t)

	n, err := lib.Catalog.BulkImport([]types.BookInput{{Title: "only"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	_, ok, err := store.Get(types.KeyBooks)
	require.NoError(t, err)
	assert.False(t, ok)
}
