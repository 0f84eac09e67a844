// Package cache provides a TTL'd LRU cache for API response bodies,
// keyed by credential-free canonical request URLs.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Stats holds cache hit/miss counters.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache is a thread-safe LRU response cache with per-entry TTL.
type Cache struct {
	lru    *expirable.LRU[string, []byte]
	logger hclog.Logger

	mu    sync.Mutex
	stats Stats
}

// New creates a cache holding at most size entries, each fresh for ttl.
func New(size int, ttl time.Duration, logger hclog.Logger) *Cache {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Cache{
		lru:    expirable.NewLRU[string, []byte](size, nil, ttl),
		logger: logger,
	}
}

// Get returns the cached body for key, if present and fresh.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, ok := c.lru.Get(key)

	c.mu.Lock()
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()

	return data, ok
}

// Set stores body under key.
func (c *Cache) Set(key string, body []byte) {
	c.lru.Add(key, body)
}

// InvalidatePrefix removes every entry whose key starts with prefix.
// Used after mutations: purging /boards/abc also drops /boards/abc/lists.
func (c *Cache) InvalidatePrefix(prefix string) {
	var removed int
	for _, key := range c.lru.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.lru.Remove(key)
			removed++
		}
	}
	if removed > 0 {
		c.logger.Debug("invalidated cache entries",
			"prefix", prefix,
			"count", removed,
		)
	}
}

// Purge removes all entries.
func (c *Cache) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// Stats returns a snapshot of hit/miss counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
