package remote

import (
	"strconv"
	"strings"
)

// Product is one remote catalog entry, fetched with fields=id,variants.
type Product struct {
	ID       int64     `json:"id"`
	Variants []Variant `json:"variants"`
}

// Variant is one remote product variant.
type Variant struct {
	ID              int64            `json:"id"`
	SKU             string           `json:"sku"`
	Stock           *FlexFloat       `json:"stock"`
	InventoryLevels []InventoryLevel `json:"inventory_levels"`
}

// InventoryLevel is a per-location stock entry on a variant.
type InventoryLevel struct {
	Stock *FlexFloat `json:"stock"`
}

// VariantPatch is one entry of a batch variant update. Price is the
// stringified integer representation the API expects.
type VariantPatch struct {
	ID    int64  `json:"id"`
	Price string `json:"price"`
}

// FlexFloat unmarshals numeric fields the API serializes either as JSON
// numbers or as quoted strings, depending on the endpoint version.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

// Value returns the underlying float of a possibly nil FlexFloat.
func (f *FlexFloat) Value() (float64, bool) {
	if f == nil {
		return 0, false
	}
	return float64(*f), true
}

// StockQuantity computes the effective stock of a variant: the direct stock
// field when present, otherwise the sum of per-location inventory levels when
// at least one is numeric, otherwise nil.
func (v Variant) StockQuantity() *float64 {
	if s, ok := v.Stock.Value(); ok {
		return &s
	}

	var acc float64
	any := false
	for _, lvl := range v.InventoryLevels {
		if s, ok := lvl.Stock.Value(); ok {
			acc += s
			any = true
		}
	}
	if !any {
		return nil
	}
	return &acc
}
