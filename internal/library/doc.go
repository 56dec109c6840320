// Package library implements the catalog and lending state model: the
// Catalog of books, the Ledger of active loans, and the Session naming the
// acting user. All three read and rewrite whole collections through a
// types.Store; any operation that touches both books and loans writes them
// in one Store.Commit.
//
// Invariants kept by every operation:
//
//   - a book is available iff no loan carries its ISBN;
//   - at most one loan exists per ISBN;
//   - a loan is only created for a non-empty user.
//
// Bulk import is the one path that trusts an external availability flag;
// Ledger.Reconcile repairs any drift it leaves.
package library
