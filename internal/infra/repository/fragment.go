package repository

import (
	"errors"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/patrickmn/go-cache"
)

const fragmentTTL = 24 * time.Hour

// MemcacheFragments shares rendered fragments between instances.
type MemcacheFragments struct {
	mc *memcache.Client
}

func NewMemcacheFragments(mc *memcache.Client) *MemcacheFragments {
	return &MemcacheFragments{mc: mc}
}

func (f *MemcacheFragments) Get(key string) ([]byte, bool) {
	item, err := f.mc.Get(key)
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			slog.Warn("fragment cache get failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}
	return item.Value, true
}

func (f *MemcacheFragments) Set(key string, value []byte) {
	err := f.mc.Set(&memcache.Item{Key: key, Value: value, Expiration: int32(fragmentTTL / time.Second)})
	if err != nil {
		slog.Warn("fragment cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// MemoryFragments is the single-instance fallback.
type MemoryFragments struct {
	c *cache.Cache
}

func NewMemoryFragments() *MemoryFragments {
	return &MemoryFragments{c: cache.New(fragmentTTL, time.Hour)}
}

func (f *MemoryFragments) Get(key string) ([]byte, bool) {
	x, found := f.c.Get(key)
	if !found {
		return nil, false
	}
	return x.([]byte), true
}

func (f *MemoryFragments) Set(key string, value []byte) {
	f.c.Set(key, value, cache.DefaultExpiration)
}
