// Package memory provides an in-process RenderCache, suitable for embedding
// and tests.
package memory

import (
	"context"
	"sync"
)

// Cache implements ports.RenderCache using a map guarded by a RWMutex.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the cached rendering for key.
func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set stores the rendering for key.
func (c *Cache) Set(_ context.Context, key string, rendered string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = rendered
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
