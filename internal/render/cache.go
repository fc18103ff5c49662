package render

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/jengzang/route-simplex/internal/triangulation"
)

// CacheKey identifies one rendered canvas of one session state
type CacheKey struct {
	Session  string
	Mode     triangulation.Mode
	Revision uint64
}

// PNGCache keeps recently encoded canvases. Safe for concurrent use.
type PNGCache struct {
	cache *lru.Cache
	mutex sync.Mutex
}

// NewPNGCache creates a cache holding at most capacity images
func NewPNGCache(capacity int) *PNGCache {
	return &PNGCache{cache: lru.New(capacity)}
}

// Get returns the cached PNG bytes, or nil
func (c *PNGCache) Get(key CacheKey) []byte {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	data, ok := c.cache.Get(key)
	if !ok {
		return nil
	}
	return data.([]byte)
}

// Add stores PNG bytes
func (c *PNGCache) Add(key CacheKey, data []byte) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache.Add(key, data)
}

// Len returns the number of cached images
func (c *PNGCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cache.Len()
}
