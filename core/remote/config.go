package remote

// Config holds configuration for the remote e-commerce catalog API.
type Config struct {
	// BaseURL is the root of the platform API.
	BaseURL string `mapstructure:"base_url" default:"https://api.tiendanube.com"`
	// StoreID identifies the store within the platform.
	StoreID string `mapstructure:"store_id" default:""`
	// Token is the static bearer token for the Authentication header.
	Token string `mapstructure:"token" default:""`
	// UserAgent is the User-Agent header the platform requires on every call.
	UserAgent string `mapstructure:"user_agent" default:""`
	// APIVersion is the version segment of the API path.
	APIVersion string `mapstructure:"api_version" default:"2025-03"`
	// PageSize is the per_page value used when listing products.
	PageSize int `mapstructure:"page_size" default:"200"`
	// TimeoutSeconds is the HTTP timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheTTLSeconds is the time-to-live for the cached catalog index.
	// Zero disables caching; batch jobs rebuild the index every run.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}
