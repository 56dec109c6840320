package library

import (
	"fmt"

	"github.com/mesh-intelligence/shelf/internal/transfer"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// GuestName is reported by Stats when nobody is logged in.
const GuestName = "Guest"

// Library bundles the catalog, ledger and session over one store.
type Library struct {
	Catalog *Catalog
	Ledger  *Ledger
	Session *Session
}

// Stats summarizes the library for display.
type Stats struct {
	TotalBooks    int    `json:"total_books"`
	BorrowedBooks int    `json:"borrowed_books"`
	User          string `json:"user"`
}

// Open builds a Library over store, loading the session.
func Open(store types.Store, opts ...Option) (*Library, error) {
	session, err := OpenSession(store, opts...)
	if err != nil {
		return nil, err
	}
	return &Library{
		Catalog: NewCatalog(store, opts...),
		Ledger:  NewLedger(store, opts...),
		Session: session,
	}, nil
}

// Borrow lends isbn to the session's user.
func (l *Library) Borrow(isbn string) error {
	user, _ := l.Session.CurrentUser()
	return l.Ledger.Borrow(isbn, user)
}

// Return gives back isbn on behalf of the session's user.
func (l *Library) Return(isbn string) error {
	user, _ := l.Session.CurrentUser()
	return l.Ledger.Return(isbn, user)
}

// ImportText parses CSV text and bulk-imports the complete rows.
func (l *Library) ImportText(text string) (int, error) {
	return transfer.Import(text, l.Catalog)
}

// ExportText renders the catalog as CSV text. An empty catalog is refused
// with ErrEmptyCatalog.
func (l *Library) ExportText() (string, error) {
	books, err := l.ExportBooks()
	if err != nil {
		return "", err
	}
	return transfer.ExportText(books), nil
}

// ExportPrintable lays the catalog out for a page renderer. An empty
// catalog is refused with ErrEmptyCatalog.
func (l *Library) ExportPrintable() ([]transfer.PrintLine, error) {
	books, err := l.ExportBooks()
	if err != nil {
		return nil, err
	}
	return transfer.ExportPrintable(books), nil
}

// ExportBooks returns the catalog for export, refusing an empty one with
// ErrEmptyCatalog.
func (l *Library) ExportBooks() ([]types.Book, error) {
	books, err := l.Catalog.ListAll()
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("export: %w", types.ErrEmptyCatalog)
	}
	return books, nil
}

// Stats counts books and active loans. Borrowed is the size of the ledger,
// not the number of unavailable flags.
func (l *Library) Stats() (Stats, error) {
	books, err := l.Catalog.ListAll()
	if err != nil {
		return Stats{}, err
	}
	loans, err := l.Ledger.ListActive()
	if err != nil {
		return Stats{}, err
	}
	user, ok := l.Session.CurrentUser()
	if !ok {
		user = GuestName
	}
	return Stats{TotalBooks: len(books), BorrowedBooks: len(loans), User: user}, nil
}
