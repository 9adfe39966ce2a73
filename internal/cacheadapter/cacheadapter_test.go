package cacheadapter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hraharahra/pathfinder/internal/cacheadapter"
	"github.com/hraharahra/pathfinder/internal/memcache"
)

func TestCacheAdapter(t *testing.T) {
	ctx := context.Background()
	t.Run("can set and get a key", func(t *testing.T) {
		// given
		cache := memcache.NewWithTimeout(0)
		defer cache.Close()
		ca := cacheadapter.New(cache, "http-", time.Hour)
		// when
		ca.Set("alpha", []byte("xxx"))
		// then
		b, ok := ca.Get("alpha")
		assert.True(t, ok)
		assert.Equal(t, []byte("xxx"), b)
	})
	t.Run("should report a missing key", func(t *testing.T) {
		// given
		cache := memcache.NewWithTimeout(0)
		defer cache.Close()
		ca := cacheadapter.New(cache, "http-", time.Hour)
		// when
		_, ok := ca.Get("alpha")
		// then
		assert.False(t, ok)
	})
	t.Run("can delete a key", func(t *testing.T) {
		// given
		cache := memcache.NewWithTimeout(0)
		defer cache.Close()
		ca := cacheadapter.New(cache, "http-", time.Hour)
		ca.Set("alpha", []byte("xxx"))
		// when
		ca.Delete("alpha")
		// then
		_, ok := ca.Get("alpha")
		assert.False(t, ok)
	})
	t.Run("should store keys under the prefix", func(t *testing.T) {
		// given
		cache := memcache.NewWithTimeout(0)
		defer cache.Close()
		ca := cacheadapter.New(cache, "http-", time.Hour)
		// when
		ca.Set("alpha", []byte("xxx"))
		// then
		_, ok, err := cache.Get(ctx, "http-alpha")
		if assert.NoError(t, err) {
			assert.True(t, ok)
		}
	})
}
