package catalog

import "time"

// Config holds settings shared by the remote catalog clients.
type Config struct {
	// RequestDelayMS is the fixed delay between sequential per-game detail
	// requests. Both remotes rate limit aggressively; fetches stay serialized
	// and spaced, never parallelized.
	RequestDelayMS int `mapstructure:"request_delay_ms" default:"500"`
	// TimeoutSeconds bounds each individual HTTP call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// SearchCacheTTLSeconds is how long search results stay cached.
	SearchCacheTTLSeconds int `mapstructure:"search_cache_ttl_seconds" default:"300"`
}

// RequestDelay returns the inter-call delay as a duration.
func (c Config) RequestDelay() time.Duration {
	if c.RequestDelayMS <= 0 {
		return 0
	}
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// Timeout returns the per-call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchCacheTTL returns the search cache TTL as a duration.
func (c Config) SearchCacheTTL() time.Duration {
	if c.SearchCacheTTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.SearchCacheTTLSeconds) * time.Second
}
