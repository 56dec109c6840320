package transfer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// bookRow is the Parquet schema for exported books.
type bookRow struct {
	Title     string `parquet:"title"`
	Author    string `parquet:"author"`
	ISBN      string `parquet:"isbn"`
	Genre     string `parquet:"genre"`
	Available bool   `parquet:"available"`
}

// WriteParquet writes books to path, replacing any existing file.
func WriteParquet(path string, books []types.Book) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating parquet file: %w", err)
	}

	rows := make([]bookRow, len(books))
	for i, b := range books {
		rows[i] = bookRow(b)
	}

	w := parquet.NewGenericWriter[bookRow](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("writing parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return f.Close()
}

// ReadParquet reads book records from path. Availability is carried as
// stored; incomplete rows are returned too and left for BulkImport to skip.
func ReadParquet(path string) ([]types.BookInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet: %w", err)
	}

	reader := parquet.NewGenericReader[bookRow](pf)
	defer reader.Close()

	records := []types.BookInput{}
	batch := make([]bookRow, 128)
	for {
		n, err := reader.Read(batch)
		for _, r := range batch[:n] {
			records = append(records, types.BookInput(r))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading parquet rows: %w", err)
		}
	}
	return records, nil
}
