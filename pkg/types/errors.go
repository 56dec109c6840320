package types

import (
	"errors"
	"fmt"
)

// Catalog errors.
var (
	ErrValidation    = errors.New("validation failed")
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateISBN = errors.New("isbn already in catalog")
	ErrEmptyCatalog  = errors.New("no books to export")
)

// ErrLoan is the family of lending errors. Every error returned by a failed
// borrow or return matches it with errors.Is.
var ErrLoan = errors.New("loan refused")

// Lending errors.
var (
	ErrNoUser          = fmt.Errorf("%w: you must login to borrow a book", ErrLoan)
	ErrAlreadyBorrowed = fmt.Errorf("%w: book is already borrowed", ErrLoan)
)
