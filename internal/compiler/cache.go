package compiler

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

const defaultCacheSize = 64

// Cache memoizes successful Compile results by source content. Failed
// compiles are not cached. Safe for concurrent use.
type Cache struct {
	results *lru.ARCCache
}

// NewCache returns a cache holding up to size results (64 when size <= 0).
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	results, err := lru.NewARC(size)
	if err != nil {
		return nil, err
	}
	return &Cache{results: results}, nil
}

// Compile returns the cached result for src, compiling it on a miss. The
// second return value reports whether the result came from the cache.
func (c *Cache) Compile(src string) (*Result, bool, error) {
	key := xxhash.Sum64String(src)
	if cached, ok := c.results.Get(key); ok {
		entry := cached.(cacheEntry)
		// Different sources may share a hash.
		if entry.src == src {
			return entry.res, true, nil
		}
	}

	res, err := Compile(src)
	if err != nil {
		return nil, false, err
	}
	c.results.Add(key, cacheEntry{src: src, res: res})
	return res, false, nil
}

// Len reports how many results are cached.
func (c *Cache) Len() int {
	return c.results.Len()
}

// Purge drops every cached result.
func (c *Cache) Purge() {
	c.results.Purge()
}

type cacheEntry struct {
	src string
	res *Result
}
