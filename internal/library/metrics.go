package library

import "github.com/VictoriaMetrics/metrics"

// Operation counters, exported on the default metrics set.
var (
	booksAddedTotal    = metrics.NewCounter("shelf_books_added_total")
	booksImportedTotal = metrics.NewCounter("shelf_books_imported_total")
	importSkippedTotal = metrics.NewCounter("shelf_import_rows_skipped_total")
	borrowsTotal       = metrics.NewCounter("shelf_borrows_total")
	returnsTotal       = metrics.NewCounter("shelf_returns_total")
	loanRefusedTotal   = metrics.NewCounter("shelf_loans_refused_total")
	catalogClearsTotal = metrics.NewCounter("shelf_catalog_clears_total")
	loginsTotal        = metrics.NewCounter("shelf_logins_total")
)
