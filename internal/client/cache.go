// Package client implements the browser-side data flows as a Go library: a
// typed query cache, the auth reconciler, and the deferred favorite/booking
// replay. Server handlers never import this package; it talks to them over
// HTTP like the web front end does.
package client

import "sync"

// CacheKey is a typed cache-entry identifier. Invalidation is keyed by these
// values rather than by string-prefix convention.
type CacheKey string

// Well-known cache keys.
const (
	KeyUser      CacheKey = "user"
	KeyFavorites CacheKey = "favorites"
	KeyTeachers  CacheKey = "teachers"
)

// TeacherKey returns the cache key for one teacher's detail entry.
func TeacherKey(teacherID string) CacheKey {
	return CacheKey("teacher:" + teacherID)
}

// Invalidator observes cache invalidations.
type Invalidator interface {
	Invalidated(key CacheKey)
}

// Cache is a small typed entry cache with explicit invalidation events.
type Cache struct {
	mu        sync.RWMutex
	entries   map[CacheKey]interface{}
	observers []Invalidator
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]interface{})}
}

// Subscribe registers an observer for invalidation events.
func (c *Cache) Subscribe(obs Invalidator) {
	c.mu.Lock()
	c.observers = append(c.observers, obs)
	c.mu.Unlock()
}

// Get returns the cached entry for key, if any.
func (c *Cache) Get(key CacheKey) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores an entry.
func (c *Cache) Set(key CacheKey, value interface{}) {
	c.mu.Lock()
	c.entries[key] = value
	c.mu.Unlock()
}

// Invalidate drops an entry and notifies observers.
func (c *Cache) Invalidate(key CacheKey) {
	c.mu.Lock()
	delete(c.entries, key)
	observers := make([]Invalidator, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, obs := range observers {
		obs.Invalidated(key)
	}
}
