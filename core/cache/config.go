package cache

// Config holds configuration for the Redis cache.
type Config struct {
	// URL is the Redis connection URL (e.g. redis://localhost:6379/0).
	// When empty, caching is disabled and the application runs without Redis.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds bounds individual cache operations.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"2"`
}
