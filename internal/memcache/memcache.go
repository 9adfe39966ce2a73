// Package memcache implements a simple in-memory cache.
package memcache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	cleanUpTimeOutDefault = time.Minute * 10
)

// An in-memory cache with prefix deletion.
type Cache struct {
	items  sync.Map
	closeC chan struct{}
}

type item struct {
	Value     []byte
	ExpiresAt time.Time
}

// New creates a new cache with default timeout and returns it.
//
// Users can close the cache to free allocated resources when the cache is no longer needed.
func New() *Cache {
	return create(cleanUpTimeOutDefault)
}

// NewWithTimeout creates a new cache with a specific timeout for the regular clean-up and returns it.
//
// A timeout of 0 disables the automatic clean-up and users then need to start clean-up manually.
//
// When automatic clean-up is enabled users can close the cache
// to free allocated resources when the cache is no longer needed.
func NewWithTimeout(cleanUpTimeout time.Duration) *Cache {
	return create(cleanUpTimeout)
}

func create(cleanUpTimeout time.Duration) *Cache {
	c := &Cache{
		closeC: make(chan struct{}),
	}
	if cleanUpTimeout > 0 {
		go func() {
			for {
				select {
				case <-c.closeC:
					slog.Info("cache closed")
					return
				case <-time.After(cleanUpTimeout):
				}
				c.CleanUp()
			}
		}()
	}
	return c
}

// CleanUp removes all expired items.
func (c *Cache) CleanUp() {
	slog.Info("cache clean-up: started")
	n := 0
	c.items.Range(func(key, value any) bool {
		_, found, _ := c.Get(context.Background(), key.(string))
		if !found {
			c.items.Delete(key)
			n++
		}
		return true
	})
	slog.Info("cache clean-up: completed", "removed", n)
}

// Clear removes all items.
func (c *Cache) Clear(ctx context.Context) error {
	c.items.Range(func(key, value any) bool {
		c.items.Delete(key)
		return true
	})
	return nil
}

// Close closes the cache and frees allocated resources.
func (c *Cache) Close() {
	close(c.closeC)
}

// Delete deletes an item.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.items.Delete(key)
	return nil
}

// DeleteByPrefix deletes all items whose key starts with prefix.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.items.Range(func(key, value any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.items.Delete(key)
		}
		return true
	})
	return nil
}

// Exists reports wether an item exists. Expired items do not exist.
func (c *Cache) Exists(ctx context.Context, key string) bool {
	_, ok, _ := c.Get(ctx, key)
	return ok
}

// Get returns an item that exists and is not expired.
// It also reports whether the item was found.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := c.items.Load(key)
	if !ok {
		return nil, false, nil
	}
	i := value.(item)
	if !i.ExpiresAt.IsZero() && time.Until(i.ExpiresAt) < 0 {
		return nil, false, nil
	}
	return i.Value, ok, nil
}

// Set stores an item in the cache.
//
// If an item with the same key already exists it will be overwritten.
// An item with timeout = 0 never expires
func (c *Cache) Set(ctx context.Context, key string, value []byte, timeout time.Duration) error {
	var at time.Time
	if timeout > 0 {
		at = time.Now().Add(timeout)
	}
	i := item{Value: value, ExpiresAt: at}
	c.items.Store(key, i)
	return nil
}
