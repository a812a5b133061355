// Package query bridges the resource services into a cache-backed read
// model: fresh reads are served from the process-wide cache, misses are
// coalesced so identical concurrent requests share one network call, and
// failed reads are retried a configured number of times. Mutations never
// pass through here, so they are never retried automatically.
package query

import (
	"context"

	"golang.org/x/sync/singleflight"

	"chaching/internal/cache"
	"chaching/internal/log"
)

// Client is the read-through query layer over the shared cache.
type Client struct {
	cache   *cache.Cache
	group   singleflight.Group
	retries int
	logger  *log.Logger
}

func New(c *cache.Cache, retries int, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Client{
		cache:   c,
		retries: retries,
		logger:  logger.WithComponent(log.ComponentQuery),
	}
}

// Fetch returns the cached value under key when fresh; otherwise it runs fn
// (with retries) and caches the result. Concurrent calls for the same key
// are coalesced into a single underlying fn invocation.
func (c *Client) Fetch(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	if value, ok := c.cache.Get(key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have populated the cache while this one
		// was queued on the flight group.
		if value, ok := c.cache.Get(key); ok {
			return value, nil
		}

		value, err := WithRetry(ctx, c.retries, fn)
		if err != nil {
			c.logger.WarnContext(ctx, "Query failed",
				log.FieldOperation, log.OpFetch,
				log.FieldCacheKey, key,
				log.FieldError, err.Error())
			return nil, err
		}

		c.cache.Set(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Store caches a value under key outside a Fetch cycle; paginated readers
// use it to keep an accumulated page set current.
func (c *Client) Store(key string, value any) {
	c.cache.Set(key, value)
}

// Invalidate marks every cache entry under the given resource prefix stale.
func (c *Client) Invalidate(prefix string) {
	touched := c.cache.Invalidate(prefix)
	c.logger.Debug("Cache invalidated",
		log.FieldOperation, log.OpInvalidate,
		log.FieldResource, prefix,
		"entries", touched)
}

// Clear drops the whole cache, forcing every reader to refetch. Used on
// identity changes (login, logout, signup).
func (c *Client) Clear() {
	c.cache.Clear()
}

// Retries returns the configured automatic retry count for reads.
func (c *Client) Retries() int {
	return c.retries
}

// FetchAs is a typed wrapper around Client.Fetch.
func FetchAs[T any](ctx context.Context, c *Client, key string, fn func(context.Context) (T, error)) (T, error) {
	value, err := c.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}

// WithRetry runs fn up to 1+retries times, stopping on the first success or
// on context cancellation.
func WithRetry[T any](ctx context.Context, retries int, fn func(context.Context) (T, error)) (T, error) {
	var (
		value T
		err   error
	)
	for attempt := 0; attempt <= retries; attempt++ {
		value, err = fn(ctx)
		if err == nil {
			return value, nil
		}
		if ctx.Err() != nil {
			break
		}
	}
	var zero T
	return zero, err
}
