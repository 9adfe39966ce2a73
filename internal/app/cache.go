package app

import (
	"context"
	"time"
)

// CacheService is a key value store with prefix deletion.
//
// Values are stored serialized so that implementations can be backed
// by memory or by an external store like redis.
type CacheService interface {
	Clear(ctx context.Context) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A timeout of 0 means the value never expires.
	Set(ctx context.Context, key string, value []byte, timeout time.Duration) error
}
