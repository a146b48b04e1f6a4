package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// item 包装缓存数据和过期时间
type item struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a process-local LRU whose entries also expire.
type MemoryStore struct {
	lruCache *lru.Cache[string, item]
	now      func() time.Time
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	l, err := lru.New[string, item](size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &MemoryStore{lruCache: l, now: time.Now}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	val, ok := s.lruCache.Get(key)
	if !ok {
		return nil, false
	}

	// 检查过期
	if s.now().After(val.expiresAt) {
		s.lruCache.Remove(key)
		return nil, false
	}
	return val.data, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.lruCache.Add(key, item{
		data:      value,
		expiresAt: s.now().Add(ttl),
	})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.lruCache.Remove(key)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.lruCache.Purge()
	return nil
}
