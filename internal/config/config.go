package config

// Config holds application settings (in-memory representation).
// Persistence is handled by internal/db package.
type Config struct {
	UpstreamURL    string `json:"upstream_url"`
	RequestTimeout int    `json:"request_timeout_seconds"`
	MaxConcurrent  int    `json:"max_concurrent_requests"`

	// Leaderboard categories included in the server-wide totals rollup.
	TotalCategories []string `json:"total_categories"`

	// TotalsMultiplier projects a single leaderboard page to a server-wide
	// figure. Hand-tuned heuristic, not a measured value; results are
	// order-of-magnitude indicators only.
	TotalsMultiplier float64 `json:"totals_multiplier"`

	// MaxProbePage bounds the size estimator when every coarse probe
	// comes back non-empty.
	MaxProbePage int `json:"max_probe_page"`

	PricesCacheTTLMinutes int    `json:"prices_cache_ttl_minutes"`
	Theme                 string `json:"theme"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		UpstreamURL:    "https://api.mineplex-stats.example/v1",
		RequestTimeout: 30,
		MaxConcurrent:  10,
		TotalCategories: []string{
			"money",
			"playtime",
			"kills",
			"deaths",
			"placed_blocks",
			"broken_blocks",
			"mobs_killed",
		},
		TotalsMultiplier:      15,
		MaxProbePage:          10000,
		PricesCacheTTLMinutes: 5,
		Theme:                 "dark",
	}
}
