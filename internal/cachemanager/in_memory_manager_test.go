package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type listKey string

type specSummary struct {
	Code int32
	Path []int32
}

func newTestCache[V any]() *InMemoryCacheManager[listKey, V] {
	return NewInMemoryCacheManager[listKey, V]("spec-lists", DefaultExpiration, DefaultCleanupInterval)
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_SliceType(t *testing.T) {
	cache := newTestCache[[]specSummary]()
	want := []specSummary{{Code: 101, Path: []int32{1001, 1002}}}
	cache.Set(context.Background(), "concepts:202401:1", want, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "concepts:202401:1")
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestInMemoryCacheManager_GetMissingValue(t *testing.T) {
	cache := newTestCache[[]specSummary]()

	got, ok := cache.Get(context.Background(), "concepts:202401:1")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestInMemoryCacheManager_GetWithInvalidValueType(t *testing.T) {
	cache := newTestCache[string]()

	cache.cache.Set("articles:202401:1", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "articles:202401:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_ExpiredValue(t *testing.T) {
	cache := newTestCache[string]()
	cache.Set(context.Background(), "k", "v", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_SetOverwritesAndRestartsTTL(t *testing.T) {
	cache := newTestCache[string]()
	cache.Set(context.Background(), "k", "v1", 50*time.Millisecond)
	cache.Set(context.Background(), "k", "v2", time.Hour)

	time.Sleep(100 * time.Millisecond)
	got, ok := cache.Get(context.Background(), "k")
	require.True(t, ok)
	require.Equal(t, "v2", got)
	require.Equal(t, 1, cache.ItemCount())
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	cache := newTestCache[string]()
	cache.Set(context.Background(), "a", "1", DefaultExpiration)
	cache.Set(context.Background(), "b", "2", DefaultExpiration)
	require.Equal(t, 2, cache.ItemCount())

	require.NoError(t, cache.Flush(context.Background()))
	require.Zero(t, cache.ItemCount())
}
