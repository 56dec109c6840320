// Package pdf renders printable line layouts to PDF documents.
package pdf

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/mesh-intelligence/shelf/internal/transfer"
)

const fontFamily = "Helvetica"

// Render writes lines to w as an A4 portrait document measured in
// millimetres. A new page is started whenever a line's page number moves
// past the current one. At least one page is always produced.
func Render(w io.Writer, lines []transfer.PrintLine) error {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont(fontFamily, "", transfer.PrintBodySize)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	page := 1
	for _, line := range lines {
		for page < line.Page {
			doc.AddPage()
			page++
		}
		doc.SetFontSize(line.FontSize)
		doc.Text(line.X, line.Y, tr(line.Text))
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}
