// Package stock mirrors remote stock levels into the local catalog.
//
// A run pages through the remote catalog, matches remote variants to local
// ones by trimmed SKU, and updates the matched rows in concurrent chunks.
// Rows are only ever updated, never inserted, and the first write failure
// aborts the run.
package stock
