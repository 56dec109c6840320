package library

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Ledger owns the active loans stored under types.KeyBorrowed and keeps
// each book's availability flag in step with them.
type Ledger struct {
	store types.Store
	opts  options
}

// NewLedger returns a ledger over store.
func NewLedger(store types.Store, opts ...Option) *Ledger {
	return &Ledger{store: store, opts: buildOptions(opts)}
}

// ListActive returns the active loans in the order they were taken.
func (l *Ledger) ListActive() ([]types.Loan, error) {
	return load[types.Loan](l.store, types.KeyBorrowed)
}

// Borrow lends the book with isbn to user. It fails with ErrNoUser when
// user is blank, with an error matching both ErrLoan and ErrBookNotFound
// when no book has isbn, and with ErrAlreadyBorrowed when the book is out.
// On success the loan and the book's flag are committed together. The user
// name is stored trimmed.
func (l *Ledger) Borrow(isbn, user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return l.refuse("borrow", isbn, user, types.ErrNoUser)
	}

	books, err := load[types.Book](l.store, types.KeyBooks)
	if err != nil {
		return err
	}
	i := indexOf(books, isbn)
	if i < 0 {
		return l.refuse("borrow", isbn, user, bookNotFound())
	}
	if !books[i].Available {
		return l.refuse("borrow", isbn, user, types.ErrAlreadyBorrowed)
	}

	loans, err := l.ListActive()
	if err != nil {
		return err
	}
	if onLoan(loans, isbn) {
		// The flag drifted; the loan record wins.
		return l.refuse("borrow", isbn, user, types.ErrAlreadyBorrowed)
	}

	loan := types.Loan{
		ID:   l.opts.newID(),
		ISBN: isbn,
		User: user,
		Date: l.opts.now().Format(types.LoanDateLayout),
	}
	loans = append(loans, loan)
	markAvailability(books, isbn, false)

	if err := commitBooksAndLoans(l.store, books, loans); err != nil {
		return err
	}
	borrowsTotal.Inc()
	l.opts.logger.Info("book borrowed", "isbn", isbn, "user", user, "loan_id", loan.ID)
	return nil
}

// Return removes the loans taken by user for isbn. It fails with an error
// matching ErrLoan and ErrBookNotFound when no book has isbn. When no loan
// matches (isbn, user) the call succeeds without removing anything. The
// book is marked available only if no loan for isbn remains, so a return by
// someone other than the borrower leaves the book out. user is trimmed
// before matching.
func (l *Ledger) Return(isbn, user string) error {
	user = strings.TrimSpace(user)
	books, err := load[types.Book](l.store, types.KeyBooks)
	if err != nil {
		return err
	}
	if indexOf(books, isbn) < 0 {
		return l.refuse("return", isbn, user, bookNotFound())
	}

	loans, err := l.ListActive()
	if err != nil {
		return err
	}
	kept := make([]types.Loan, 0, len(loans))
	for _, loan := range loans {
		if !loan.Matches(isbn, user) {
			kept = append(kept, loan)
		}
	}
	removed := len(loans) - len(kept)
	markAvailability(books, isbn, !onLoan(kept, isbn))

	if err := commitBooksAndLoans(l.store, books, kept); err != nil {
		return err
	}
	if removed == 0 {
		l.opts.logger.Warn("return matched no loan", "isbn", isbn, "user", user)
		return nil
	}
	returnsTotal.Inc()
	l.opts.logger.Info("book returned", "isbn", isbn, "user", user)
	return nil
}

// Reconcile recomputes every book's availability from the active loans and
// persists the result. It returns the books whose flag changed, as they
// are after the repair.
func (l *Ledger) Reconcile() ([]types.Book, error) {
	books, err := load[types.Book](l.store, types.KeyBooks)
	if err != nil {
		return nil, err
	}
	loans, err := l.ListActive()
	if err != nil {
		return nil, err
	}

	lent := make(map[string]bool, len(loans))
	for _, loan := range loans {
		lent[loan.ISBN] = true
	}

	changed := []types.Book{}
	for i := range books {
		want := !lent[books[i].ISBN]
		if books[i].Available != want {
			books[i].Available = want
			changed = append(changed, books[i])
		}
	}
	if len(changed) == 0 {
		return changed, nil
	}

	if err := commitBooksAndLoans(l.store, books, loans); err != nil {
		return nil, err
	}
	l.opts.logger.Warn("availability reconciled", "changed", len(changed))
	return changed, nil
}

func (l *Ledger) refuse(op, isbn, user string, err error) error {
	loanRefusedTotal.Inc()
	l.opts.logger.Debug(op+" refused", "isbn", isbn, "user", user, "error", err)
	return fmt.Errorf("%s %q: %w", op, isbn, err)
}

// bookNotFound marks a missing book as a lending failure as well.
func bookNotFound() error {
	return fmt.Errorf("%w: %w", types.ErrLoan, types.ErrBookNotFound)
}

func onLoan(loans []types.Loan, isbn string) bool {
	for _, loan := range loans {
		if loan.ISBN == isbn {
			return true
		}
	}
	return false
}
