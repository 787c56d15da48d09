package cache

import (
	"context"
	"time"
)

// NullCache discards everything and always misses. It is the backend
// for --no-cache runs and for tests that must not share state.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache { return &NullCache{} }

// Get implements Cache; it always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set implements Cache; the value is dropped.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete implements Cache.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Close implements Cache.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
