package services

import (
	"fmt"
	"time"

	"github.com/karlseguin/ccache/v3"
)

// DefaultCacheTTL bounds how long a resolved fetch is reused within one mount.
var DefaultCacheTTL = 30 * time.Second

// RequestCache holds resolved fetch results keyed by query key.
//
// Failed fetches are never stored.
type RequestCache struct {
	c   *ccache.Cache[any]
	ttl time.Duration
}

// NewRequestCache creates a cache holding at most maxSize results for ttl each.
func NewRequestCache(maxSize int64, ttl time.Duration) *RequestCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &RequestCache{
		c: ccache.New(
			ccache.Configure[any]().
				MaxSize(maxSize).
				GetsPerPromote(3).
				PercentToPrune(10),
		),
		ttl: ttl,
	}
}

// Fetch returns the live cached value for key or calls fetch and stores its result.
func (c *RequestCache) Fetch(key string, fetch func() (any, error)) (any, error) {
	item, err := c.c.Fetch(key, c.ttl, fetch)
	if err != nil {
		return nil, err
	}
	return item.Value(), nil
}

// Invalidate removes key, reporting whether it was cached.
func (c *RequestCache) Invalidate(key string) bool {
	return c.c.Delete(key)
}

// Len returns the number of cached results.
func (c *RequestCache) Len() int {
	return c.c.ItemCount()
}

// Clear drops every cached result.
func (c *RequestCache) Clear() {
	c.c.Clear()
}

// Stop shuts down the cache's background worker.
func (c *RequestCache) Stop() {
	c.c.Stop()
}

// fetchAs is [RequestCache.Fetch] with a typed result. A nil cache always calls fetch.
func fetchAs[T any](c *RequestCache, key string, fetch func() (T, error)) (T, error) {
	if c == nil {
		return fetch()
	}

	v, err := c.Fetch(key, func() (any, error) { return fetch() })
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache entry %q holds %T", key, v)
	}
	return typed, nil
}
