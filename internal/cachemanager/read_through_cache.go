package cachemanager

import (
	"context"
	"time"
)

// ReadThroughOptions configures a ReadThroughCache.
type ReadThroughOptions struct {
	// TTL applies to every stored value. Zero or negative bypasses the store.
	TTL time.Duration
	// RefreshOnHit stores a hit again so its TTL restarts.
	RefreshOnHit bool
}

// ReadThroughCache serves values from a store and loads missing ones. Load errors
// are never stored.
type ReadThroughCache[K comparable, V any, I any] struct {
	store CacheManager[K, V]
	load  func(ctx context.Context, input I) (V, error)
	opts  ReadThroughOptions
}

func NewReadThroughCache[K comparable, V any, I any](
	store CacheManager[K, V],
	load func(ctx context.Context, input I) (V, error),
	opts ReadThroughOptions,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{store: store, load: load, opts: opts}
}

// Enabled reports whether values are stored at all.
func (r *ReadThroughCache[K, V, I]) Enabled() bool {
	return r.opts.TTL > 0
}

// Get returns the value stored under key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I) (V, error) {
	if !r.Enabled() {
		return r.load(ctx, input)
	}

	if value, ok := r.store.Get(ctx, key); ok {
		if r.opts.RefreshOnHit {
			r.store.Set(ctx, key, value, r.opts.TTL)
		}
		return value, nil
	}

	value, err := r.load(ctx, input)
	if err != nil {
		return value, err
	}
	r.store.Set(ctx, key, value, r.opts.TTL)
	return value, nil
}

// Len is the number of stored values, expired ones included until cleanup.
func (r *ReadThroughCache[K, V, I]) Len() int {
	return r.store.ItemCount()
}

// Invalidate drops every stored value.
func (r *ReadThroughCache[K, V, I]) Invalidate(ctx context.Context) error {
	return r.store.Flush(ctx)
}
