// Package cachemanager provides a typed in-memory cache and a read-through helper
// used to memoize resolved specification lists.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the store behind a ReadThroughCache.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	// Set stores value under key for ttl.
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Flush(ctx context.Context) error
	ItemCount() int
}
