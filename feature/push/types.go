package push

// Push scopes.
const (
	ScopeProduct = "product"
	ScopeAll     = "all"
)

// ProductResult counts the variants updated under one remote product.
type ProductResult struct {
	ProductID int64 `json:"product_id"`
	Updated   int   `json:"updated"`
}

// FailedProduct records a remote product whose patch failed. The run keeps
// going; the failure only marks the report.
type FailedProduct struct {
	ProductID int64  `json:"product_id"`
	Attempted int    `json:"attempted"`
	Error     string `json:"error"`
}

// SkippedVariant records a local variant left out of the push and why.
type SkippedVariant struct {
	SKU             string `json:"sku"`
	LocalItemID     int64  `json:"local_item_id"`
	RemoteVariantID *int64 `json:"remote_variant_id,omitempty"`
	Reason          string `json:"reason,omitempty"`
}

// Report is the outcome of one price push run.
type Report struct {
	OK              bool             `json:"ok"`
	Partial         bool             `json:"partial"`
	Scope           string           `json:"scope"`
	RequestedItemID *int64           `json:"requested_item_id"`
	ProductsTouched int              `json:"products_touched"`
	VariantsUpdated int              `json:"variants_updated"`
	PerProduct      []ProductResult  `json:"per_product"`
	FailedProducts  []FailedProduct  `json:"failed_products"`
	MissingSKULocal []SkippedVariant `json:"missing_sku_local"`
	MissingInRemote []SkippedVariant `json:"missing_in_remote"`
	SkippedNoPrice  []SkippedVariant `json:"skipped_no_price"`
}
