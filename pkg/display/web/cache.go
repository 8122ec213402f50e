package web

import "sync"

type cacheEntry struct {
	hash       uint64
	data       []byte
	compressed bool
	valid      bool
}

// cache is a fixed size ring of encoded frames, keyed by the hash of
// the raw frame. Clients keep a mirror of it so that a frame seen
// recently is sent as its index alone.
type cache struct {
	cache []cacheEntry
	idx   int
	sync.RWMutex
}

func newCache(size int) *cache {
	return &cache{
		cache: make([]cacheEntry, size),
	}
}

// add stores the encoded frame in the oldest slot and returns its
// index.
func (c *cache) add(hash uint64, output []byte, compressed bool) int {
	c.Lock()
	defer c.Unlock()

	i := c.idx
	c.cache[i] = cacheEntry{hash: hash, data: output, compressed: compressed, valid: true}
	c.idx = (c.idx + 1) % len(c.cache)
	return i
}

// index returns the index of the frame with the given hash, or -1.
func (c *cache) index(hash uint64) int {
	c.RLock()
	defer c.RUnlock()

	for i, e := range c.cache {
		if e.valid && e.hash == hash {
			return i
		}
	}

	return -1
}

// entries calls fn for every cached frame.
func (c *cache) entries(fn func(i int, e cacheEntry)) {
	c.RLock()
	defer c.RUnlock()

	for i, e := range c.cache {
		if e.valid {
			fn(i, e)
		}
	}
}
