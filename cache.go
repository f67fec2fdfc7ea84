package patternlib

import (
	"slices"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goodtwin/go-patternlib/internal/annotation"
)

// DefaultCacheSize bounds the number of files kept by NewParseCache(0).
const DefaultCacheSize = 1024

// ParseCache remembers the blocks extracted from a file, keyed by path and
// a fingerprint of its content. Watch mode reuses one cache across builds so
// only edited files are parsed again. A nil *ParseCache is valid and caches
// nothing. Safe for concurrent use.
type ParseCache struct {
	entries *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	sum    uint64
	blocks []annotation.Block
}

// NewParseCache returns a cache holding at most size files.
// size <= 0 selects DefaultCacheSize.
func NewParseCache(size int) *ParseCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		panic(err) // only fails for size <= 0
	}
	return &ParseCache{entries: entries}
}

// Get returns the cached blocks for path when content is unchanged.
func (c *ParseCache) Get(path string, content []byte) ([]annotation.Block, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.entries.Get(path)
	if !ok || e.sum != xxhash.Sum64(content) {
		return nil, false
	}
	return slices.Clone(e.blocks), true
}

// Put stores the blocks extracted from content.
func (c *ParseCache) Put(path string, content []byte, blocks []annotation.Block) {
	if c == nil {
		return
	}
	c.entries.Add(path, cacheEntry{sum: xxhash.Sum64(content), blocks: slices.Clone(blocks)})
}

// Forget drops path, e.g. after the file was removed.
func (c *ParseCache) Forget(path string) {
	if c == nil {
		return
	}
	c.entries.Remove(path)
}

// Len returns the number of cached files.
func (c *ParseCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
