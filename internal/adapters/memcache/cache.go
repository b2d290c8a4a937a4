// Package memcache provides the process-wide compilation cache.
package memcache

import (
	"sync"

	"go.trai.ch/fuse/internal/core/domain"
	"go.trai.ch/fuse/internal/core/ports"
)

var _ ports.CallableCache = (*Cache)(nil)

// Cache maps verbatim source text to its callable. Entries are never evicted.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]domain.Callable
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]domain.Callable)}
}

// Get returns the callable stored for source.
func (c *Cache) Get(source string) (domain.Callable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	callable, ok := c.entries[source]
	return callable, ok
}

// PutIfAbsent stores callable unless source already has an entry, and returns the stored one.
func (c *Cache) PutIfAbsent(source string, callable domain.Callable) (domain.Callable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[source]; ok {
		return existing, true
	}
	c.entries[source] = callable
	return callable, false
}

