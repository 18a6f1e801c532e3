// Package cache provides thread-safe generic caching plus the process-wide
// caches for rendered pages, syntax CSS and static asset hashes.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) SetTo(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// RenderedPage is a legal page rendered from the markdown held in the content.
type RenderedPage struct {
	HTML    []byte
	Title   string
	Updated string
}

var renderedPageCache = NewCache[string, *RenderedPage]()

// Pages are keyed by the hash of their markdown and the renderer used.
func GetRenderedPage(contentHash, renderer string) (*RenderedPage, bool) {
	return renderedPageCache.Get(contentHash + ":" + renderer)
}

func SetRenderedPage(contentHash, renderer string, page *RenderedPage) {
	renderedPageCache.Set(contentHash+":"+renderer, page)
}

func ClearRenderedPageCache() {
	renderedPageCache.Clear()
}
