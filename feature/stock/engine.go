package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"catalog-manager/core/remote"
	"catalog-manager/feature/catalog"
	"catalog-manager/feature/catalog/models"

	"go.uber.org/zap"
)

// chunkSize bounds how many row updates run concurrently.
const chunkSize = 50

// Summary is the outcome of one stock sync run.
type Summary struct {
	OK                  bool `json:"ok"`
	RemoteVariantsSeen  int  `json:"remote_variants_seen"`
	LocalVariantsWithSK int  `json:"local_variants_with_sku"`
	MatchedBySKU        int  `json:"matched_by_sku"`
	RowsWritten         int  `json:"rows_written"`
}

// Engine copies remote stock levels onto local variant rows, matching by
// trimmed SKU. Matching is case sensitive here, unlike the price push; the
// remote store is the source of truth for how SKUs are cased.
type Engine struct {
	store  *catalog.Store
	client remote.Client
	cfg    remote.Config
	logger *zap.Logger
}

// NewEngine creates a new stock sync engine.
func NewEngine(store *catalog.Store, client remote.Client, cfg remote.Config, logger *zap.Logger) *Engine {
	return &Engine{store: store, client: client, cfg: cfg, logger: logger}
}

// rowUpdate carries one pending local write.
type rowUpdate struct {
	localID         int64
	remoteVariantID int64
	stock           *float64
}

// Sync walks the remote catalog and writes remote stock, remote variant id
// and a sync timestamp onto matching local variants. Only existing rows are
// updated, never inserted. Any storage failure aborts the run.
func (e *Engine) Sync(ctx context.Context, owner string) (*Summary, error) {
	items, err := e.store.GetItems(ctx, owner)
	if err != nil {
		return nil, err
	}

	skuToLocal := make(map[string]int64)
	for idx := range items {
		item := &items[idx]
		if item.Type != models.TypeVariant || item.SKU == nil {
			continue
		}
		sku := strings.TrimSpace(*item.SKU)
		if sku != "" {
			skuToLocal[sku] = item.ID
		}
	}

	products, err := remote.FetchCatalog(ctx, e.client, e.pageSize())
	if err != nil {
		return nil, err
	}

	summary := &Summary{LocalVariantsWithSK: len(skuToLocal)}
	now := time.Now().UTC()

	var updates []rowUpdate
	for _, product := range products {
		for idx := range product.Variants {
			variant := &product.Variants[idx]
			summary.RemoteVariantsSeen++

			sku := strings.TrimSpace(variant.SKU)
			if sku == "" {
				continue
			}
			localID, ok := skuToLocal[sku]
			if !ok {
				continue
			}

			summary.MatchedBySKU++
			updates = append(updates, rowUpdate{
				localID:         localID,
				remoteVariantID: variant.ID,
				stock:           variant.StockQuantity(),
			})
		}
	}

	for start := 0; start < len(updates); start += chunkSize {
		end := start + chunkSize
		if end > len(updates) {
			end = len(updates)
		}
		if err := e.writeChunk(ctx, owner, updates[start:end], now); err != nil {
			return nil, err
		}
		summary.RowsWritten += end - start
	}

	summary.OK = true
	e.logger.Info("Stock sync completed",
		zap.String("owner", owner),
		zap.Int("remoteVariantsSeen", summary.RemoteVariantsSeen),
		zap.Int("localVariantsWithSku", summary.LocalVariantsWithSK),
		zap.Int("matchedBySku", summary.MatchedBySKU),
		zap.Int("rowsWritten", summary.RowsWritten))
	return summary, nil
}

// writeChunk runs the chunk's row updates concurrently and fails on the
// first error.
func (e *Engine) writeChunk(ctx context.Context, owner string, chunk []rowUpdate, now time.Time) error {
	errCh := make(chan error, len(chunk))
	for _, update := range chunk {
		go func(u rowUpdate) {
			values := map[string]any{
				"remote_variant_id":      u.remoteVariantID,
				"remote_stock_synced_at": now,
			}
			if u.stock != nil {
				values["remote_stock"] = *u.stock
			} else {
				values["remote_stock"] = nil
			}
			errCh <- e.store.UpdateItem(ctx, owner, u.localID, values)
		}(update)
	}

	for range chunk {
		if err := <-errCh; err != nil {
			return fmt.Errorf("stock sync write failed: %w", err)
		}
	}
	return nil
}

func (e *Engine) pageSize() int {
	if e.cfg.PageSize > 0 {
		return e.cfg.PageSize
	}
	return 200
}
