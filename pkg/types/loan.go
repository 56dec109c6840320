package types

// LoanDateLayout formats Loan.Date as a short month/day/year string.
const LoanDateLayout = "1/2/2006"

// Loan is an active lending record. A loan owns the "book is unavailable"
// fact for its ISBN.
type Loan struct {
	// ID is a UUID v7, generated on borrow. Blobs written before IDs existed
	// decode with an empty ID.
	ID string `json:"id,omitempty"`

	// ISBN references the borrowed book.
	ISBN string `json:"isbn"`

	// User is the borrower, copied from the session at borrow time.
	User string `json:"user"`

	// Date is informational only and never compared.
	Date string `json:"date"`
}

// Matches reports whether the loan was taken by user for isbn.
func (l Loan) Matches(isbn, user string) bool {
	return l.ISBN == isbn && l.User == user
}
