// Package cache holds rendered pages for a fixed time.
package cache

import (
	"context"
	"time"
)

// Store 缓存后端接口，可在本地 LRU 与 Redis 之间切换
type Store interface {
	// Get returns the value and true on a hit. Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear drops every entry owned by this store.
	Clear(ctx context.Context) error
}
