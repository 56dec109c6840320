package library

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Catalog owns the book collection stored under types.KeyBooks.
type Catalog struct {
	store types.Store
	opts  options
}

// NewCatalog returns a catalog over store.
func NewCatalog(store types.Store, opts ...Option) *Catalog {
	return &Catalog{store: store, opts: buildOptions(opts)}
}

// ListAll returns every book in insertion order. An absent collection is
// empty.
func (c *Catalog) ListAll() ([]types.Book, error) {
	return load[types.Book](c.store, types.KeyBooks)
}

// Add validates in and appends it as an available book. Title, author and
// isbn are required after trimming; with WithUniqueISBN an existing isbn is
// rejected with ErrDuplicateISBN. Nothing is written on failure.
func (c *Catalog) Add(in types.BookInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	book := in.Book(true)

	books, err := c.ListAll()
	if err != nil {
		return err
	}
	if c.opts.uniqueISBN && indexOf(books, book.ISBN) >= 0 {
		return fmt.Errorf("%w: %s", types.ErrDuplicateISBN, book.ISBN)
	}

	books = append(books, book)
	if err := c.save(books); err != nil {
		return err
	}
	booksAddedTotal.Inc()
	c.opts.logger.Info("book added", "isbn", book.ISBN, "title", book.Title)
	return nil
}

// Search returns books whose title or author contains query ignoring case,
// or whose isbn contains the lower-cased query. The isbn itself is compared
// without case folding. An empty query returns every book in order.
func (c *Catalog) Search(query string) ([]types.Book, error) {
	books, err := c.ListAll()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return books, nil
	}

	q := strings.ToLower(query)
	matches := []types.Book{}
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) ||
			strings.Contains(b.ISBN, q) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

// Find returns the first book with isbn.
func (c *Catalog) Find(isbn string) (types.Book, error) {
	books, err := c.ListAll()
	if err != nil {
		return types.Book{}, err
	}
	i := indexOf(books, isbn)
	if i < 0 {
		return types.Book{}, fmt.Errorf("%w: %s", types.ErrBookNotFound, isbn)
	}
	return books[i], nil
}

// SetAvailability sets the availability flag of every book carrying isbn.
// Returns ErrBookNotFound when no book has it. The ledger is not consulted;
// lending paths go through Ledger so both collections move together.
func (c *Catalog) SetAvailability(isbn string, available bool) error {
	books, err := c.ListAll()
	if err != nil {
		return err
	}
	if !markAvailability(books, isbn, available) {
		return fmt.Errorf("%w: %s", types.ErrBookNotFound, isbn)
	}
	return c.save(books)
}

// DeleteAll removes every book. Active loans are removed in the same commit
// since they would reference nothing. Irreversible.
func (c *Catalog) DeleteAll() error {
	err := c.store.Commit([]types.Write{
		{Key: types.KeyBooks, Remove: true},
		{Key: types.KeyBorrowed, Remove: true},
	})
	if err != nil {
		return fmt.Errorf("clearing catalog: %w", err)
	}
	catalogClearsTotal.Inc()
	c.opts.logger.Warn("catalog cleared")
	return nil
}

// BulkImport appends every complete record (title, author, isbn and genre
// present) with its own availability flag, skipping the rest silently.
// Existing isbns are not deduplicated. Returns the number appended.
func (c *Catalog) BulkImport(records []types.BookInput) (int, error) {
	books, err := c.ListAll()
	if err != nil {
		return 0, err
	}

	appended := 0
	for _, r := range records {
		if !r.Complete() {
			continue
		}
		books = append(books, r.Book(r.Available))
		appended++
	}
	skipped := len(records) - appended

	if appended > 0 {
		if err := c.save(books); err != nil {
			return 0, err
		}
	}
	booksImportedTotal.Add(appended)
	importSkippedTotal.Add(skipped)
	c.opts.logger.Info("books imported", "appended", appended, "skipped", skipped)
	return appended, nil
}

func (c *Catalog) save(books []types.Book) error {
	w, err := encode(types.KeyBooks, books)
	if err != nil {
		return err
	}
	if err := c.store.Commit([]types.Write{w}); err != nil {
		return fmt.Errorf("saving books: %w", err)
	}
	return nil
}

// indexOf returns the position of the first book with isbn, or -1.
func indexOf(books []types.Book, isbn string) int {
	for i, b := range books {
		if b.ISBN == isbn {
			return i
		}
	}
	return -1
}

// markAvailability sets the flag on every book with isbn and reports
// whether any matched.
func markAvailability(books []types.Book, isbn string, available bool) bool {
	found := false
	for i := range books {
		if books[i].ISBN == isbn {
			books[i].Available = available
			found = true
		}
	}
	return found
}
