package transfer

import (
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Header is the first line of exported CSV text.
const Header = "Title,Author,ISBN,Genre,Available"

// Delimiter separates CSV columns.
const Delimiter = ","

// Importer receives parsed records.
type Importer interface {
	BulkImport(records []types.BookInput) (int, error)
}

// ParseText parses CSV text into complete book records. Lines are trimmed
// and blank lines dropped; the first remaining line is a header and is
// skipped. Columns are positional (title, author, isbn, genre, available);
// missing trailing columns are empty. A row is available only when its
// fifth column reads "yes" in any case. Rows lacking any of the first four
// columns are dropped.
func ParseText(text string) []types.BookInput {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	records := []types.BookInput{}
	for i := 1; i < len(lines); i++ {
		cols := strings.Split(lines[i], Delimiter)
		in := types.BookInput{
			Title:     column(cols, 0),
			Author:    column(cols, 1),
			ISBN:      column(cols, 2),
			Genre:     column(cols, 3),
			Available: strings.ToLower(column(cols, 4)) == "yes",
		}
		if !in.Complete() {
			continue
		}
		records = append(records, in.Normalize())
	}
	return records
}

// Import parses text and hands the records to dst. Returns the number dst
// reports as appended.
func Import(text string, dst Importer) (int, error) {
	return dst.BulkImport(ParseText(text))
}

// ExportText renders books as CSV text: Header, then one row per book with
// commas removed from title and author and Yes/No for availability. Lines
// are joined by "\n" with no trailing newline.
func ExportText(books []types.Book) string {
	lines := make([]string, 0, len(books)+1)
	lines = append(lines, Header)
	for _, b := range books {
		lines = append(lines, strings.Join([]string{
			strings.ReplaceAll(b.Title, ",", ""),
			strings.ReplaceAll(b.Author, ",", ""),
			b.ISBN,
			b.Genre,
			yesNo(b.Available),
		}, Delimiter))
	}
	return strings.Join(lines, "\n")
}

func column(cols []string, i int) string {
	if i >= len(cols) {
		return ""
	}
	return strings.TrimSpace(cols[i])
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
