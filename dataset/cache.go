package dataset

import (
	"sync"
)

// CacheKey identifies one table of one database.
type CacheKey struct {
	Database string
	Table    string
}

// CacheEntry maps a normalized condition ("" for none) to the frame loaded
// under it.
type CacheEntry map[string]*Frame

// Cache memoizes table frames by (database, table, condition). The zero
// value is not usable; use NewCache or DefaultCache.
type Cache struct {
	mu      sync.RWMutex
	entries map[CacheKey]CacheEntry
}

var defaultCache = NewCache()

func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]CacheEntry)}
}

// DefaultCache returns the process wide cache shared by every loader that
// was not given its own.
func DefaultCache() *Cache {
	return defaultCache
}

func (c *Cache) Lookup(database, table, condition string) (*Frame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[CacheKey{Database: database, Table: table}]
	if !ok {
		return nil, false
	}
	f, ok := entry[condition]
	return f, ok
}

// Store inserts or overwrites the frame for the exact key triple.
func (c *Cache) Store(database, table, condition string, f *Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := CacheKey{Database: database, Table: table}
	entry, ok := c.entries[key]
	if !ok {
		entry = make(CacheEntry)
		c.entries[key] = entry
	}
	entry[condition] = f
}

// Clear drops every entry, whoever stored it.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]CacheEntry)
}

// Len returns the number of cached (database, table, condition) triples.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, entry := range c.entries {
		n += len(entry)
	}
	return n
}
