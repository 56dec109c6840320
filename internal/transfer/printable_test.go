package transfer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestExportPrintableHeader(t *testing.T) {
	lines := ExportPrintable([]types.Book{
		{Title: "Dune", Author: "Frank Herbert", ISBN: "111", Genre: "SF", Available: true},
	})

	require.Len(t, lines, 3)
	assert.Equal(t, PrintLine{Page: 1, X: 10, Y: 10, FontSize: 16, Text: "Library Book List"}, lines[0])
	assert.Equal(t, PrintLine{Page: 1, X: 10, Y: 20, FontSize: 10, Text: "Title | Author | ISBN | Genre | Available"}, lines[1])
	assert.Equal(t, PrintLine{Page: 1, X: 10, Y: 26, FontSize: 10, Text: "Dune | Frank Herbert | 111 | SF | Yes"}, lines[2])
}

func TestExportPrintablePagination(t *testing.T) {
	books := make([]types.Book, 100)
	for i := range books {
		books[i] = types.Book{Title: fmt.Sprintf("Book %d", i), Author: "A", ISBN: fmt.Sprint(i), Genre: "G"}
	}

	rows := ExportPrintable(books)[2:]
	require.Len(t, rows, 100)

	// Page 1 holds rows at y=26..278, page 2 restarts at the top and runs
	// to y=280.
	perPage := map[int]int{}
	for _, r := range rows {
		perPage[r.Page]++
		assert.LessOrEqual(t, r.Y, float64(PrintPageBottom))
	}
	assert.Equal(t, 43, perPage[1])
	assert.Equal(t, 46, perPage[2])
	assert.Equal(t, 11, perPage[3])

	assert.Equal(t, float64(278), rows[42].Y)
	assert.Equal(t, 2, rows[43].Page)
	assert.Equal(t, float64(10), rows[43].Y)
	assert.Equal(t, float64(280), rows[88].Y)
	assert.Equal(t, 3, rows[89].Page)
	assert.Equal(t, "Book 0 | A | 0 | G | No", rows[0].Text)
}

func TestExportPrintableEmpty(t *testing.T) {
	lines := ExportPrintable(nil)
	assert.Len(t, lines, 2)
}
