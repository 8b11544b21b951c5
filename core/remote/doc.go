// Package remote implements the client for the external e-commerce
// platform's catalog API.
//
// The consumed surface is small: a paginated product listing (fetched with
// fields=id,variants) and a batch variant-price PATCH per product.
// Authentication is a static bearer token plus a mandatory User-Agent
// header, both injected via configuration.
//
// # Pagination
//
// The platform does not expose a total count; FetchCatalog pages at the
// configured page size until a page shorter than the requested size (or an
// empty page) is returned.
//
// # Index cache
//
// BuildIndex turns a fetched catalog into SKU and variant-id lookup maps.
// GetOrBuildIndex caches the index per store with a TTL and singleflight
// stampede protection. The default TTL of zero disables caching, which is
// what the batch jobs want: every run reconciles against a fresh snapshot.
package remote
