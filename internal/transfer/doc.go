// Package transfer moves catalog records across the boundary: plain CSV
// text in and out, a printable line layout for page renderers, and a
// Parquet file format for bulk exchange.
//
// The CSV dialect is deliberately naive. Rows are split on commas with no
// quoting, so a comma inside a field shifts every later column. Export
// strips commas from titles and authors to keep its own output readable.
package transfer
