package remote

import (
	"context"
	"strings"
)

// Ref points at one remote variant and the product that owns it.
type Ref struct {
	ProductID int64
	VariantID int64
}

// CatalogIndex holds the lookup maps built from a full catalog fetch.
type CatalogIndex struct {
	// BySKU maps normalized (trimmed, uppercased) SKUs to remote refs.
	BySKU map[string]Ref
	// ByVariantID maps remote variant ids to remote refs.
	ByVariantID map[int64]Ref
	// VariantsSeen is the total number of remote variants walked.
	VariantsSeen int
}

// NormalizeSKU trims and uppercases a SKU for index lookups.
func NormalizeSKU(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// FetchCatalog pages through the product list until a page shorter than
// perPage (or an empty page) is returned. The total count is unknown up
// front; the short page is the only termination signal.
func FetchCatalog(ctx context.Context, c Client, perPage int) ([]Product, error) {
	if perPage <= 0 {
		perPage = 200
	}

	var all []Product
	for page := 1; ; page++ {
		products, err := c.ListProductsPage(ctx, page, perPage)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}

		all = append(all, products...)

		if len(products) < perPage {
			break
		}
	}

	return all, nil
}

// BuildIndex builds the SKU and variant-id lookup maps from a fetched
// catalog. Variants without a SKU are indexed by id only.
func BuildIndex(products []Product) *CatalogIndex {
	idx := &CatalogIndex{
		BySKU:       make(map[string]Ref),
		ByVariantID: make(map[int64]Ref),
	}

	for _, p := range products {
		for _, v := range p.Variants {
			idx.VariantsSeen++
			ref := Ref{ProductID: p.ID, VariantID: v.ID}
			idx.ByVariantID[v.ID] = ref

			sku := NormalizeSKU(v.SKU)
			if sku == "" {
				continue
			}
			idx.BySKU[sku] = ref
		}
	}

	return idx
}
