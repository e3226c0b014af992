package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small JSON-over-Redis cache with per-entry TTL.
// A nil *Cache is valid and behaves as a permanent miss, so callers can wire
// it optionally without nil checks at every call site.
type Cache struct {
	cli     *redis.Client
	timeout time.Duration
}

// New connects to Redis using the configured URL.
// It returns (nil, nil) when no URL is configured.
func New(cfg Config) (*Cache, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 2
	}

	return &Cache{
		cli:     redis.NewClient(opt),
		timeout: time.Duration(timeout) * time.Second,
	}, nil
}

// Get unmarshals the cached value for key into dest.
// It returns false on a miss or any Redis error; cache errors never fail the
// caller's operation.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.cli.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key with the given TTL. Errors are ignored for the
// same reason as in Get.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	_ = c.cli.Set(ctx, key, raw, ttl).Err()
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.cli.Close()
}
