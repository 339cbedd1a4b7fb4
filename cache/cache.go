// Package cache is a process-lifetime key/value store with per-resource
// TTL tiers, used to avoid re-running the staffing aggregation on every
// read. Mutations elsewhere do not invalidate it; staleness is bounded by
// the tier TTL.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Resource tiers.
const (
	TTLStaffing      = 60 * time.Second
	TTLEmployees     = 300 * time.Second
	TTLProjects      = 600 * time.Second
	TTLProjectColors = 1800 * time.Second
	TTLCalendarDays  = 86400 * time.Second
)

type item struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

type Cache struct {
	mu    sync.Mutex
	items map[string]item
	now   func() time.Time
}

// New returns an empty cache. Construct one per service instance; there
// is no process-wide singleton.
func New() *Cache {
	return &Cache{
		items: make(map[string]item),
		now:   time.Now,
	}
}

// Key builds a composite cache key from resource type and parameters.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// Get returns the stored value if it is still within its TTL window.
// Expired values are evicted on read.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(it.storedAt) > it.ttl {
		delete(c.items, key)
		return nil, false
	}
	return it.value, true
}

// Set stores value under key with the given tier TTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item{value: value, storedAt: c.now(), ttl: ttl}
}

// Clear removes every key containing pattern; an empty pattern flushes
// the whole cache.
func (c *Cache) Clear(pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		c.items = make(map[string]item)
		return
	}
	for k := range c.items {
		if strings.Contains(k, pattern) {
			delete(c.items, k)
		}
	}
}

// Len reports the number of stored values, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
