// Package integrity audits a catalog for data problems that break pricing
// or sync runs: orphan recipe lines, variants that can never match the
// remote store, composites with missing or stale cached costs, margins
// outside the valid range and SKUs with stray whitespace.
package integrity
