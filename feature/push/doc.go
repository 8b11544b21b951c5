// Package push reconciles locally computed prices with the remote store
// catalog.
//
// A run snapshots the remote catalog into a SKU and variant-id index,
// prices every local variant with parent fallback, and patches the matched
// remote variants product by product with a pause between patches. Variants
// that cannot be matched or priced are reported, and a failed product patch
// marks the report partial instead of aborting the run.
package push
