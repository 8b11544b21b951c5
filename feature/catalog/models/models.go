package models

import (
	"strings"
	"time"

	"catalog-manager/feature/pricing"
)

// Item types. Variants inherit most pricing inputs from their parent item.
const (
	TypeProduct    = "product"
	TypeVariant    = "variant"
	TypeIngredient = "ingredient"
)

// Publish kinds select which computed price is pushed to the remote store.
const (
	PublishRetail    = "retail"
	PublishWholesale = "wholesale"
)

// Recipe line units.
const (
	UnitWeightGrams = "weight-grams"
	UnitCount       = "count"
)

// Item is one row of the catalog: a product, a variant of a product, or a
// raw ingredient. Optional numeric fields are nil when the owner has not
// filled them in.
type Item struct {
	ID       int64  `gorm:"column:id;primaryKey" json:"id"`
	Owner    string `gorm:"column:owner;index" json:"owner"`
	Name     string `gorm:"column:name" json:"name"`
	Type     string `gorm:"column:type" json:"type"`
	ParentID *int64 `gorm:"column:parent_id" json:"parent_id"`

	// IsComposite marks items whose cost comes from a recipe instead of
	// purchase inputs.
	IsComposite bool `gorm:"column:is_composite" json:"is_composite"`

	ManualUnitCost    *float64 `gorm:"column:manual_unit_cost" json:"manual_unit_cost"`
	BulkPrice         *float64 `gorm:"column:bulk_price" json:"bulk_price"`
	UnitsPerBulk      *float64 `gorm:"column:units_per_bulk" json:"units_per_bulk"`
	RetailMargin      *float64 `gorm:"column:retail_margin" json:"retail_margin"`
	WholesaleMargin   *float64 `gorm:"column:wholesale_margin" json:"wholesale_margin"`
	WholesalePackSize *int     `gorm:"column:wholesale_pack_size" json:"wholesale_pack_size"`

	SoldByWeight      bool     `gorm:"column:sold_by_weight" json:"sold_by_weight"`
	WeightPerUnitG    *float64 `gorm:"column:weight_per_unit_g" json:"weight_per_unit_g"`
	ManualCostPer100g *float64 `gorm:"column:manual_cost_per_100g" json:"manual_cost_per_100g"`
	MarginPer100g     *float64 `gorm:"column:margin_per_100g" json:"margin_per_100g"`

	// PublishPrice selects the channel whose price is pushed remotely.
	// Empty means retail.
	PublishPrice *string `gorm:"column:publish_price" json:"publish_price"`

	CompositeCostCache      *float64   `gorm:"column:composite_cost_cache" json:"composite_cost_cache"`
	CompositeCostComputedAt *time.Time `gorm:"column:composite_cost_computed_at" json:"composite_cost_computed_at"`

	SKU                 *string    `gorm:"column:sku" json:"sku"`
	RemoteVariantID     *int64     `gorm:"column:remote_variant_id" json:"remote_variant_id"`
	RemoteStock         *float64   `gorm:"column:remote_stock" json:"remote_stock"`
	RemoteStockSyncedAt *time.Time `gorm:"column:remote_stock_synced_at" json:"remote_stock_synced_at"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the default gorm table name.
func (Item) TableName() string {
	return "items"
}

// PricingInputs maps the item's stored fields onto the pricing engine's
// input shape.
func (i *Item) PricingInputs() pricing.Inputs {
	return pricing.Inputs{
		ManualUnitCost:    i.ManualUnitCost,
		BulkPrice:         i.BulkPrice,
		UnitsPerBulk:      i.UnitsPerBulk,
		RetailMargin:      i.RetailMargin,
		WholesaleMargin:   i.WholesaleMargin,
		WholesalePackSize: i.WholesalePackSize,
		SoldByWeight:      i.SoldByWeight,
		WeightPerUnitG:    i.WeightPerUnitG,
		ManualCostPer100g: i.ManualCostPer100g,
		MarginPer100g:     i.MarginPer100g,
	}
}

// PublishKind returns the effective publish channel for the item.
func (i *Item) PublishKind() string {
	if i.PublishPrice != nil && *i.PublishPrice == PublishWholesale {
		return PublishWholesale
	}
	return PublishRetail
}

// NormalizedSKU returns the trimmed SKU, or empty when absent.
func (i *Item) NormalizedSKU() string {
	if i.SKU == nil {
		return ""
	}
	return strings.TrimSpace(*i.SKU)
}

// RecipeLine is one component of a composite item's recipe.
type RecipeLine struct {
	ID          int64   `gorm:"column:id;primaryKey" json:"id"`
	Owner       string  `gorm:"column:owner;index" json:"owner"`
	ParentID    int64   `gorm:"column:parent_id;index" json:"parent_id"`
	ComponentID int64   `gorm:"column:component_id" json:"component_id"`
	Quantity    float64 `gorm:"column:quantity" json:"quantity"`
	// Unit is either weight-grams or count.
	Unit string `gorm:"column:unit" json:"unit"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the default gorm table name.
func (RecipeLine) TableName() string {
	return "recipe_lines"
}

// Parameter is an owner-scoped key/value setting, stored as text.
type Parameter struct {
	ID    int64  `gorm:"column:id;primaryKey" json:"id"`
	Owner string `gorm:"column:owner;index" json:"owner"`
	Key   string `gorm:"column:key" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

// TableName overrides the default gorm table name.
func (Parameter) TableName() string {
	return "parameters"
}
