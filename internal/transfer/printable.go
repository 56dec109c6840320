package transfer

import (
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Printable layout, in page units (millimetres on A4).
const (
	PrintTitle      = "Library Book List"
	PrintTitleSize  = 16
	PrintBodySize   = 10
	PrintMarginX    = 10
	PrintTitleY     = 10
	PrintHeaderY    = 20
	PrintLineHeight = 6
	PrintPageBottom = 280
	PrintPageTopY   = 10
	printSeparator  = " | "
)

// PrintLine is one line of text placed on a page. Pages are numbered from 1.
type PrintLine struct {
	Page     int     `json:"page"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FontSize float64 `json:"font_size"`
	Text     string  `json:"text"`
}

// ExportPrintable lays books out as a titled list. The title and a column
// header open page 1; each book follows on its own line, fields joined by
// " | ". After a line, when the cursor passes the bottom of the page the
// next line starts a new page at the top.
func ExportPrintable(books []types.Book) []PrintLine {
	lines := make([]PrintLine, 0, len(books)+2)
	lines = append(lines,
		PrintLine{Page: 1, X: PrintMarginX, Y: PrintTitleY, FontSize: PrintTitleSize, Text: PrintTitle},
		PrintLine{Page: 1, X: PrintMarginX, Y: PrintHeaderY, FontSize: PrintBodySize,
			Text: strings.ReplaceAll(Header, Delimiter, printSeparator)},
	)

	page, y := 1, float64(PrintHeaderY+PrintLineHeight)
	for _, b := range books {
		lines = append(lines, PrintLine{
			Page:     page,
			X:        PrintMarginX,
			Y:        y,
			FontSize: PrintBodySize,
			Text:     strings.Join([]string{b.Title, b.Author, b.ISBN, b.Genre, yesNo(b.Available)}, printSeparator),
		})
		y += PrintLineHeight
		if y > PrintPageBottom {
			page++
			y = PrintPageTopY
		}
	}
	return lines
}
