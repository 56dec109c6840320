package pdf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/shelf/internal/transfer"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func TestRender(t *testing.T) {
	books := make([]types.Book, 60)
	for i := range books {
		books[i] = types.Book{Title: "Café", Author: "Zoë", ISBN: "1", Genre: "G", Available: i%2 == 0}
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, transfer.ExportPrintable(books)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%PDF-"))
	assert.Contains(t, out, "/Count 2")
}

func TestRenderNoLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}
