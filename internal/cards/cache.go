package cards

import (
	"image"
	"sync"
)

// Resolver resolves a card key to a decoded image.
type Resolver interface {
	Resolve(key string) *image.NRGBA
}

// Cache is a concurrency-safe card image cache. Keys are file paths.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*image.NRGBA
	load  func(string) (*image.NRGBA, error)
}

// NewCache creates a cache that loads images from disk on first use.
func NewCache() *Cache {
	return NewLoaderCache(LoadImage)
}

// NewLoaderCache creates a cache that calls load on the first use of a key.
func NewLoaderCache(load func(key string) (*image.NRGBA, error)) *Cache {
	return &Cache{
		items: make(map[string]*image.NRGBA),
		load:  load,
	}
}

// Put stores an image under key, replacing any previous entry.
func (c *Cache) Put(key string, img *image.NRGBA) {
	c.mu.Lock()
	c.items[key] = img
	c.mu.Unlock()
}

// Resolve returns the image for key, loading it on first use. Failed loads
// are cached as nil.
func (c *Cache) Resolve(key string) *image.NRGBA {
	// Fast path: read lock
	c.mu.RLock()
	if img, ok := c.items[key]; ok {
		c.mu.RUnlock()
		return img
	}
	c.mu.RUnlock()

	img, _ := c.load(key)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[key]; ok {
		return existing
	}
	c.items[key] = img
	return img
}
