// Package cache is a small TTL cache for computed dataset views.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Observer is notified of cache hits and misses.
type Observer interface {
	CacheHit()
	CacheMiss()
}

type entry[T any] struct {
	val T
	exp time.Time
}

// Cache maps string keys to values that expire after a fixed TTL.
// A zero or negative TTL disables caching: Set is a no-op.
type Cache[T any] struct {
	mu  sync.RWMutex
	m   map[string]entry[T]
	ttl time.Duration
	obs Observer
	now func() time.Time
}

// New creates a cache. obs may be nil.
func New[T any](ttl time.Duration, obs Observer) *Cache[T] {
	return &Cache[T]{m: make(map[string]entry[T]), ttl: ttl, obs: obs, now: time.Now}
}

// Get returns the live value for key.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || c.now().After(e.exp) {
		if c.obs != nil {
			c.obs.CacheMiss()
		}
		return zero, false
	}
	if c.obs != nil {
		c.obs.CacheHit()
	}
	return e.val, true
}

// Set stores v under key for one TTL.
func (c *Cache[T]) Set(key string, v T) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.m[key] = entry[T]{val: v, exp: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops every key starting with prefix and returns how many were
// dropped. An empty prefix clears the cache.
func (c *Cache[T]) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
			n++
		}
	}
	return n
}

// Purge drops expired entries.
func (c *Cache[T]) Purge() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.m {
		if now.After(e.exp) {
			delete(c.m, k)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// DatasetPrefix is the prefix shared by every key of one dataset.
func DatasetPrefix(datasetID string) string {
	return datasetID + "|"
}

// SummaryKey keys a dataset's completion summary.
func SummaryKey(datasetID string) string {
	return DatasetPrefix(datasetID) + "summary"
}

// GroupKey keys a dataset's grouping by one group name.
func GroupKey(datasetID, by string) string {
	return DatasetPrefix(datasetID) + "groups|" + by
}
