package store

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a concurrency-safe in-memory cache with a fixed TTL per entry.
// The service uses it to keep recently fetched weather records so repeated
// dashboard refreshes do not hammer the upstream APIs.
type Cache[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]item[V]
	ttl   time.Duration
}

// NewCache creates a cache whose entries expire ttl after being set.
// A ttl <= 0 disables caching entirely: Get always misses.
func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]item[V]),
		ttl:   ttl,
	}
}

// Get returns a copy of the cached value for key, or nil on a miss. Handing
// out copies keeps a caller's mutations from leaking into later hits.
// Expired entries are dropped on access.
func (c *Cache[K, V]) Get(key K) *V {
	if c.ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return nil
	}
	if time.Now().After(it.expiresAt) {
		delete(c.items, key)
		return nil
	}

	v := it.value
	return &v
}

// Set stores a copy of value under key with a fresh TTL.
func (c *Cache[K, V]) Set(key K, value *V) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[V]{
		value:     *value,
		expiresAt: time.Now().Add(c.ttl),
	}
}
