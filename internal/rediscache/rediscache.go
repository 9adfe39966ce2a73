// Package rediscache implements a redis backed cache.
//
// It is the production alternative to the in-memory cache
// for installations which share derived data between processes.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a redis backed key value store with prefix deletion.
//
// The client is expected to be connected to a cache dedicated database,
// since Clear flushes the whole database.
type Cache struct {
	rdb *redis.Client
}

// New returns a new cache on top of an existing redis client.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Clear(ctx context.Context) error {
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete cache key %s: %w", key, err)
	}
	return nil
}

// DeleteByPrefix deletes all keys starting with prefix.
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("delete cache prefix %s: %w", prefix, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan cache prefix %s: %w", prefix, err)
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cache key %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores a value. A timeout of 0 means the value never expires.
func (c *Cache) Set(ctx context.Context, key string, value []byte, timeout time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, timeout).Err(); err != nil {
		return fmt.Errorf("set cache key %s: %w", key, err)
	}
	return nil
}
