package push

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"catalog-manager/core/remote"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/pricing"

	"go.uber.org/zap"
)

// Engine pushes locally computed prices to the remote store catalog,
// matching local variants to remote variants by SKU first and stored remote
// variant id second.
type Engine struct {
	store  *catalog.Store
	client remote.Client
	cfg    remote.Config
	logger *zap.Logger

	// PatchDelay is the pause after each product patch so the remote API
	// rate limit is never hit. Tests set it to zero.
	PatchDelay time.Duration
}

// NewEngine creates a new price push engine.
func NewEngine(store *catalog.Store, client remote.Client, cfg remote.Config, logger *zap.Logger) *Engine {
	return &Engine{
		store:      store,
		client:     client,
		cfg:        cfg,
		logger:     logger,
		PatchDelay: 200 * time.Millisecond,
	}
}

// Run pushes prices for one product's variants or the whole catalog.
// Remote patch failures are recorded in the report, not returned; only
// setup failures (storage, catalog fetch) are fatal.
func (e *Engine) Run(ctx context.Context, owner, scope string, productID *int64) (*Report, error) {
	if scope != ScopeProduct {
		scope = ScopeAll
	}
	if scope == ScopeProduct && productID == nil {
		return nil, fmt.Errorf("product scope requires a product id")
	}

	report := &Report{
		Scope:           scope,
		RequestedItemID: productID,
		PerProduct:      []ProductResult{},
		FailedProducts:  []FailedProduct{},
		MissingSKULocal: []SkippedVariant{},
		MissingInRemote: []SkippedVariant{},
		SkippedNoPrice:  []SkippedVariant{},
	}

	step, err := e.store.GetFloatParameter(ctx, owner, pricing.RoundingStepKey, 1)
	if err != nil {
		e.logger.Warn("Could not load rounding step, using default 1", zap.Error(err))
		step = 1
	}
	if step <= 0 {
		step = 1
	}

	items, err := e.store.GetItems(ctx, owner)
	if err != nil {
		return nil, err
	}

	products := make(map[int64]*models.Item)
	var variants []*models.Item
	for idx := range items {
		item := &items[idx]
		switch item.Type {
		case models.TypeProduct:
			products[item.ID] = item
		case models.TypeVariant:
			variants = append(variants, item)
		}
	}

	if scope == ScopeProduct {
		product, ok := products[*productID]
		if !ok {
			return nil, fmt.Errorf("product %d not found", *productID)
		}
		products = map[int64]*models.Item{product.ID: product}
		scoped := variants[:0]
		for _, v := range variants {
			if v.ParentID != nil && *v.ParentID == product.ID {
				scoped = append(scoped, v)
			}
		}
		variants = scoped
	}

	index, err := remote.GetOrBuildIndex(ctx, e.client, e.cfg)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[int64][]remote.VariantPatch)
	for _, v := range variants {
		sku := remote.NormalizeSKU(valueOr(v.SKU, ""))
		if sku == "" && v.RemoteVariantID == nil {
			report.MissingSKULocal = append(report.MissingSKULocal, SkippedVariant{LocalItemID: v.ID})
			continue
		}

		parent := (*models.Item)(nil)
		if v.ParentID != nil {
			parent = products[*v.ParentID]
		}
		if parent == nil {
			report.SkippedNoPrice = append(report.SkippedNoPrice, SkippedVariant{
				SKU: sku, LocalItemID: v.ID, Reason: "no parent product",
			})
			continue
		}

		price, costOK := e.computePrice(v, parent, step)
		if price == nil {
			reason := "no computed price"
			if !costOK {
				reason = "no unit cost"
			}
			report.SkippedNoPrice = append(report.SkippedNoPrice, SkippedVariant{
				SKU: sku, LocalItemID: v.ID, Reason: reason,
			})
			continue
		}

		ref, ok := index.BySKU[sku]
		if !ok && v.RemoteVariantID != nil {
			ref, ok = index.ByVariantID[*v.RemoteVariantID]
		}
		if !ok {
			report.MissingInRemote = append(report.MissingInRemote, SkippedVariant{
				SKU: sku, LocalItemID: v.ID, RemoteVariantID: v.RemoteVariantID,
			})
			continue
		}

		byProduct[ref.ProductID] = append(byProduct[ref.ProductID], remote.VariantPatch{
			ID:    ref.VariantID,
			Price: formatPrice(*price),
		})
	}

	productIDs := make([]int64, 0, len(byProduct))
	for pid := range byProduct {
		productIDs = append(productIDs, pid)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	for _, pid := range productIDs {
		patches := byProduct[pid]
		if err := e.client.PatchVariants(ctx, pid, patches); err != nil {
			report.FailedProducts = append(report.FailedProducts, FailedProduct{
				ProductID: pid,
				Attempted: len(patches),
				Error:     err.Error(),
			})
			e.logger.Error("Variant patch failed",
				zap.Int64("productId", pid),
				zap.Int("attempted", len(patches)),
				zap.Error(err))
		} else {
			report.PerProduct = append(report.PerProduct, ProductResult{ProductID: pid, Updated: len(patches)})
			report.ProductsTouched++
			report.VariantsUpdated += len(patches)
		}
		if e.PatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(e.PatchDelay):
			}
		}
	}

	report.OK = len(report.FailedProducts) == 0
	report.Partial = len(report.FailedProducts) > 0 && len(report.PerProduct) > 0

	e.logger.Info("Price push completed",
		zap.String("owner", owner),
		zap.String("scope", scope),
		zap.Int("productsTouched", report.ProductsTouched),
		zap.Int("variantsUpdated", report.VariantsUpdated),
		zap.Int("failedProducts", len(report.FailedProducts)),
		zap.Int("missingSkuLocal", len(report.MissingSKULocal)),
		zap.Int("missingInRemote", len(report.MissingInRemote)),
		zap.Int("skippedNoPrice", len(report.SkippedNoPrice)))
	return report, nil
}

// computePrice prices one variant, filling unset inputs from the parent. A
// composite parent contributes its cached recipe cost as the manual cost.
// costOK is false when no unit cost could be derived at all, which the
// report distinguishes from a cost that yields no channel price.
func (e *Engine) computePrice(v, parent *models.Item, step float64) (price *float64, costOK bool) {
	parentManual := parent.ManualUnitCost
	if parent.IsComposite && parent.CompositeCostCache != nil {
		parentManual = parent.CompositeCostCache
	}

	inputs := pricing.Inputs{
		ManualUnitCost:    pickFloat(v.ManualUnitCost, parentManual),
		BulkPrice:         pickFloat(v.BulkPrice, parent.BulkPrice),
		UnitsPerBulk:      pickFloat(v.UnitsPerBulk, parent.UnitsPerBulk),
		RetailMargin:      resolveMargin(v.RetailMargin, parent.RetailMargin),
		WholesaleMargin:   resolveMargin(v.WholesaleMargin, parent.WholesaleMargin),
		WholesalePackSize: parent.WholesalePackSize,
	}

	breakdown := pricing.ComputePrices(inputs, step)
	if breakdown.UnitCost == nil {
		return nil, false
	}
	if parent.PublishKind() == models.PublishWholesale {
		return breakdown.Wholesale, true
	}
	return breakdown.Retail, true
}

// resolveMargin prefers the variant's margin over the parent's, each only
// when strictly inside (0,1).
func resolveMargin(variant, parent *float64) *float64 {
	if variant != nil && *variant > 0 && *variant < 1 {
		return variant
	}
	if parent != nil && *parent > 0 && *parent < 1 {
		return parent
	}
	return nil
}

func pickFloat(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

// formatPrice renders a price the way the remote API expects it, as a
// whole-number string.
func formatPrice(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}
