// Package catalog owns the item, recipe line and parameter tables, and the
// resolver that turns recipe graphs into cached composite costs.
//
// All access is owner-scoped. The resolver is a memoized depth-first walk
// over the recipe graph: cycles are detected with a visiting set and
// reported instead of recursing forever, variants inherit cost inputs from
// their parent, and only fully resolved composites get their cache written.
package catalog
