// Package cachemanager provides a typed TTL cache over patrickmn/go-cache.
package cachemanager

import (
	"context"
	"fmt"
	"time"

	"github.com/newhook/glass/internal/logging"
	gocache "github.com/patrickmn/go-cache"
)

const (
	// DefaultExpiration is the TTL applied when callers pass DefaultExpiration to Set.
	DefaultExpiration = 30 * time.Second
	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = time.Minute
)

// CacheManager is a typed key/value cache with per-entry TTLs.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
}

// InMemoryCacheManager is a process-local CacheManager. Safe for concurrent use.
type InMemoryCacheManager[K comparable, V any] struct {
	name  string
	cache *gocache.Cache
}

var _ CacheManager[string, string] = (*InMemoryCacheManager[string, string])(nil)

// NewInMemoryCacheManager creates a cache with the given default TTL and cleanup interval.
func NewInMemoryCacheManager[K comparable, V any](name string, defaultTTL, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		name:  name,
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

func cacheKey[K comparable](key K) string {
	return fmt.Sprint(key)
}

// Get returns the cached value for key. Entries holding a value of the wrong
// type are reported as misses.
func (c *InMemoryCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	var zero V
	raw, ok := c.cache.Get(cacheKey(key))
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		logging.Warn("cache entry has unexpected type", "cache", c.name, "key", cacheKey(key))
		return zero, false
	}
	return v, true
}

// Set stores value under key for ttl.
func (c *InMemoryCacheManager[K, V]) Set(ctx context.Context, key K, value V, ttl time.Duration) {
	if ttl == DefaultExpiration {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(cacheKey(key), value, ttl)
}

// Delete removes keys. Missing keys are ignored.
func (c *InMemoryCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Delete(cacheKey(key))
	}
	return nil
}
