package types

import (
	"fmt"
	"strings"
)

// Book is a catalog record. Available is a stored copy of "no active loan
// references this ISBN"; the ledger keeps the two in agreement.
type Book struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Genre     string `json:"genre"`
	Available bool   `json:"available"`
}

// BookInput carries the fields of a book to be added or imported.
// Available is honored by bulk import only; a single add always creates an
// available book.
type BookInput struct {
	Title     string
	Author    string
	ISBN      string
	Genre     string
	Available bool
}

// Normalize returns a copy with every text field trimmed.
func (in BookInput) Normalize() BookInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.ISBN = strings.TrimSpace(in.ISBN)
	in.Genre = strings.TrimSpace(in.Genre)
	return in
}

// Validate checks the fields required to add a book: title, author and isbn
// must be non-empty after trimming. Genre is optional here.
// Returns an error wrapping ErrValidation that names the first missing field.
func (in BookInput) Validate() error {
	n := in.Normalize()
	switch {
	case n.Title == "":
		return fmt.Errorf("%w: title is required", ErrValidation)
	case n.Author == "":
		return fmt.Errorf("%w: author is required", ErrValidation)
	case n.ISBN == "":
		return fmt.Errorf("%w: isbn is required", ErrValidation)
	}
	return nil
}

// Complete reports whether all four text fields are present, the standard
// applied to imported records.
func (in BookInput) Complete() bool {
	n := in.Normalize()
	return n.Title != "" && n.Author != "" && n.ISBN != "" && n.Genre != ""
}

// Book converts the input into a catalog record with the given availability.
func (in BookInput) Book(available bool) Book {
	n := in.Normalize()
	return Book{
		Title:     n.Title,
		Author:    n.Author,
		ISBN:      n.ISBN,
		Genre:     n.Genre,
		Available: available,
	}
}

// Status returns the display label for the book's availability.
func (b Book) Status() string {
	if b.Available {
		return "Available"
	}
	return "Borrowed"
}
