// Package cacheadapter enables the use of an app.CacheService with httpcache.
package cacheadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/hraharahra/pathfinder/internal/app"
)

// CacheAdapter makes a CacheService usable as an httpcache backend,
// so HTTP responses from the identity provider can be cached.
type CacheAdapter struct {
	c       app.CacheService
	prefix  string
	timeout time.Duration
}

var _ httpcache.Cache = (*CacheAdapter)(nil)

// New returns a new CacheAdapter.
// The prefix is added to all cache keys to prevent conflicts.
// Keys are stored with the given cache timeout. A timeout of 0 means that keys never expire.
func New(c app.CacheService, prefix string, timeout time.Duration) *CacheAdapter {
	ca := &CacheAdapter{c: c, prefix: prefix, timeout: timeout}
	return ca
}

func (ca *CacheAdapter) Get(key string) ([]byte, bool) {
	b, ok, err := ca.c.Get(context.Background(), ca.makeKey(key))
	if err != nil {
		slog.Warn("Failed to read cached response", "key", key, "error", err)
		return nil, false
	}
	return b, ok
}

func (ca *CacheAdapter) Set(key string, b []byte) {
	if err := ca.c.Set(context.Background(), ca.makeKey(key), b, ca.timeout); err != nil {
		slog.Warn("Failed to cache response", "key", key, "error", err)
	}
}

func (ca *CacheAdapter) Delete(key string) {
	if err := ca.c.Delete(context.Background(), ca.makeKey(key)); err != nil {
		slog.Warn("Failed to delete cached response", "key", key, "error", err)
	}
}

func (ca *CacheAdapter) makeKey(key string) string {
	return ca.prefix + key
}
