package cache

import (
	"sync"
	"time"
)

// MemoryCache is an in-process Cache used when no Redis address is configured,
// and by tests. Entries expire lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiration
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get retrieves a value. A missing or expired key yields ("", nil), matching
// the Redis implementation.
func (m *MemoryCache) Get(key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", nil
	}
	return entry.value, nil
}

// Set stores a value. Non-string values are not supported by this
// implementation; callers serialize to string first, as they must for Redis.
func (m *MemoryCache) Set(key string, value interface{}, expiration time.Duration) error {
	s, ok := value.(string)
	if !ok {
		if b, isBytes := value.([]byte); isBytes {
			s = string(b)
		} else {
			s = ""
		}
	}
	entry := memoryEntry{value: s}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes a value.
func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
