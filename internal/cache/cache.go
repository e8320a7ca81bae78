package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// entry pairs a value with the instant it stops being served.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a typed TTL cache safe for concurrent use. Expiry is checked
// lazily on Get; entries are never swept in the background, only
// overwritten on recomputation.
type Cache[V any] struct {
	store *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// New creates a cache whose entries expire ttl after they are written.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		store: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the value stored under key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	raw, found := c.store.Get(key)
	if !found {
		return zero, false
	}
	e, ok := raw.(entry[V])
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with a fresh expiry.
func (c *Cache[V]) Set(key string, value V) {
	c.store.Set(key, entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}, gocache.NoExpiration)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	return c.store.ItemCount()
}
