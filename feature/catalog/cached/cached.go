// Package cached decorates a catalog.Client with a Redis-backed search
// cache. Only Search is memoized; detail and collection fetches always hit
// the remote so sync never works from stale data.
package cached

import (
	"context"
	"fmt"
	"time"

	"collection-manager/core/cache"
	"collection-manager/feature/catalog"
)

// Client wraps an inner catalog.Client with search-result caching.
type Client struct {
	inner catalog.Client
	cache *cache.Cache
	ttl   time.Duration
}

// Wrap decorates inner with the given cache. A nil cache disables
// memoization without changing behavior.
func Wrap(inner catalog.Client, c *cache.Cache, ttl time.Duration) *Client {
	return &Client{inner: inner, cache: c, ttl: ttl}
}

// Source implements catalog.Client.
func (c *Client) Source() catalog.Source {
	return c.inner.Source()
}

// Search implements catalog.Client with a read-through cache.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]catalog.Game, error) {
	key := fmt.Sprintf("catalog:search:%s:%s:%d", c.inner.Source(), query, limit)

	var games []catalog.Game
	if c.cache.Get(ctx, key, &games) {
		return games, nil
	}

	games, err := c.inner.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, games, c.ttl)
	return games, nil
}

// FetchDetails implements catalog.Client (pass-through).
func (c *Client) FetchDetails(ctx context.Context, remoteID int64, credential string) (*catalog.Game, error) {
	return c.inner.FetchDetails(ctx, remoteID, credential)
}

// FetchUserCollection implements catalog.Client (pass-through).
func (c *Client) FetchUserCollection(ctx context.Context, credential string) ([]catalog.Game, error) {
	return c.inner.FetchUserCollection(ctx, credential)
}
