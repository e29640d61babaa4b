package utils

import (
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem wraps cached data with its expiry time.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// GlobalCache is a small in-process LRU used for rendered markdown.
// Vote scores are never cached here; they are derived from the votes
// table on every read.
type GlobalCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

var (
	cacheInstance *GlobalCache
	cacheOnce     sync.Once
)

// GetCache returns the singleton cache instance.
func GetCache() *GlobalCache {
	cacheOnce.Do(func() {
		l, err := lru.New[string, CacheItem](500)
		if err != nil {
			log.Fatalf("Failed to create LRU cache: %v", err)
		}
		cacheInstance = &GlobalCache{
			lruCache: l,
		}
	})
	return cacheInstance
}

// Set stores a value with a TTL.
func (c *GlobalCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached value, or nil if missing or expired.
func (c *GlobalCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}

	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}

	return val.Data
}

// Delete removes a key.
func (c *GlobalCache) Delete(key string) {
	c.lruCache.Remove(key)
}
