// Import and export commands for the shelf CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/library"
	"github.com/mesh-intelligence/shelf/internal/pdf"
	"github.com/mesh-intelligence/shelf/internal/transfer"
)

// Export formats.
const (
	formatCSV     = "csv"
	formatPDF     = "pdf"
	formatParquet = "parquet"
)

// defaultExportBase names export files when --output is not given.
const defaultExportBase = "library_books"

var exportOutput string

type importOutput struct {
	File     string `json:"file"`
	Imported int    `json:"imported"`
}

type exportOutputInfo struct {
	Format string `json:"format"`
	Path   string `json:"path"`
	Books  int    `json:"books"`
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import books from a CSV or Parquet file",
	Long: `Import appends the complete rows of a file to the catalog.

Files ending in .parquet are read as Parquet; anything else is read as CSV
text with a header line and the columns Title,Author,ISBN,Genre,Available.
Fields are split on commas without quoting. Rows missing a title, author,
ISBN or genre are skipped. Availability is taken from the file; run
"shelf reconcile" afterwards to align it with the loan ledger.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		return withLibrary(func(lib *library.Library) error {
			n, err := importFile(lib, path)
			if err != nil {
				return err
			}
			return printResult(cmd, importOutput{File: path, Imported: n},
				fmt.Sprintf("Imported %d book(s) from %s", n, path))
		})
	},
}

var exportCmd = &cobra.Command{
	Use:       "export <csv|pdf|parquet>",
	Short:     "Export the catalog",
	Long:      `Export writes the catalog as CSV, PDF or Parquet. With -o - CSV is written to stdout.`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{formatCSV, formatPDF, formatParquet},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		path := exportOutput
		if path == "" {
			path = defaultExportBase + "." + format
		}
		if path == "-" && format != formatCSV {
			return usageError("only csv can be written to stdout")
		}

		return withLibrary(func(lib *library.Library) error {
			n, err := exportFile(cmd.OutOrStdout(), lib, format, path)
			if err != nil {
				return err
			}
			if path == "-" {
				return nil
			}
			return printResult(cmd, exportOutputInfo{Format: format, Path: path, Books: n},
				fmt.Sprintf("Exported %d book(s) to %s", n, path))
		})
	},
}

func importFile(lib *library.Library, path string) (int, error) {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		records, err := transfer.ReadParquet(path)
		if err != nil {
			return 0, err
		}
		return lib.Catalog.BulkImport(records)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read import file: %w", err)
	}
	return lib.ImportText(string(data))
}

// exportFile writes the catalog in format to path ("-" is stdout) and
// returns the number of books written.
func exportFile(stdout io.Writer, lib *library.Library, format, path string) (int, error) {
	switch format {
	case formatCSV:
		text, err := lib.ExportText()
		if err != nil {
			return 0, err
		}
		n := strings.Count(text, "\n")
		if path == "-" {
			_, err := fmt.Fprintln(stdout, text)
			return n, err
		}
		return n, os.WriteFile(path, []byte(text), 0o644)

	case formatPDF:
		lines, err := lib.ExportPrintable()
		if err != nil {
			return 0, err
		}
		f, err := os.Create(path)
		if err != nil {
			return 0, fmt.Errorf("create export file: %w", err)
		}
		if err := pdf.Render(f, lines); err != nil {
			f.Close()
			return 0, err
		}
		return len(lines) - 2, f.Close()

	case formatParquet:
		books, err := lib.ExportBooks()
		if err != nil {
			return 0, err
		}
		return len(books), transfer.WriteParquet(path, books)

	default:
		return 0, usageError("unknown export format %q", format)
	}
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path, - for stdout (default: library_books.<format>)")
}
