// Package pricing turns item costs and margins into channel prices.
//
// The computation is a pure function over one item's inputs: unit cost from
// a manual override or a bulk-price derivation, per-channel unit sale prices
// rounded up to a configurable step, final prices on multiples of 50 with a
// wholesale pack multiplier, and an independent per-100g track for items
// sold by weight. Missing or invalid inputs yield nil prices, never NaN.
package pricing
