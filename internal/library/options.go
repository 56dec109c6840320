package library

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// options configures the catalog, ledger and session.
type options struct {
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
	uniqueISBN bool
}

// Option customizes a Library or one of its parts.
type Option func(*options)

// WithLogger sets the structured logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to date loans.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithUniqueISBN makes Catalog.Add reject an ISBN already in the catalog.
// Bulk import is not affected.
func WithUniqueISBN(unique bool) Option {
	return func(o *options) {
		o.uniqueISBN = unique
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  newLoanID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newLoanID generates a UUID v7 for a loan.
func newLoanID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
