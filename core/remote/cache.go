package remote

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedIndex is one built catalog index with its freshness metadata.
type cachedIndex struct {
	index *CatalogIndex
	built time.Time
	ttl   time.Duration
}

// isExpired returns true if this index has expired based on its TTL.
func (c *cachedIndex) isExpired() bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(c.built) > c.ttl
}

// indexStore holds catalog indexes keyed by store id.
type indexStore struct {
	mu      sync.RWMutex
	entries map[string]*cachedIndex
	sf      singleflight.Group
}

var globalIndexStore = &indexStore{
	entries: make(map[string]*cachedIndex),
}

// GetOrBuildIndex returns the catalog index for the configured store,
// rebuilding it when missing or expired. Singleflight collapses concurrent
// rebuilds of the same store into one fetch.
func GetOrBuildIndex(ctx context.Context, c Client, cfg Config) (*CatalogIndex, error) {
	key := cfg.StoreID
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	globalIndexStore.mu.RLock()
	entry, exists := globalIndexStore.entries[key]
	globalIndexStore.mu.RUnlock()

	if exists && !entry.isExpired() {
		return entry.index, nil
	}

	result, err, _ := globalIndexStore.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		globalIndexStore.mu.RLock()
		entry, exists := globalIndexStore.entries[key]
		globalIndexStore.mu.RUnlock()

		if exists && !entry.isExpired() {
			return entry.index, nil
		}

		products, err := FetchCatalog(ctx, c, cfg.PageSize)
		if err != nil {
			return nil, err
		}
		idx := BuildIndex(products)

		globalIndexStore.mu.Lock()
		globalIndexStore.entries[key] = &cachedIndex{index: idx, built: time.Now(), ttl: ttl}
		globalIndexStore.mu.Unlock()

		return idx, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*CatalogIndex), nil
}

// InvalidateIndex drops the cached index for a store, forcing a rebuild.
func InvalidateIndex(storeID string) {
	globalIndexStore.mu.Lock()
	delete(globalIndexStore.entries, storeID)
	globalIndexStore.mu.Unlock()
}
