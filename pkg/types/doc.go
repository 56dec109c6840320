// Package types defines the Book and Loan entities, the Store interface that
// persists them, backend configuration, and the sentinel errors shared by the
// shelf catalog and lending tracker.
package types
