package opcode

import (
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes instruction text to Op. Classification is a pure function of
// the text, so entries never go stale; Clear exists for long-running processes
// that see an unbounded stream of distinct instruction strings.
//
// The zero value is not usable; construct with NewCache.
type Cache struct {
	mu  sync.RWMutex
	ops map[string]Op
	sf  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// CacheStats is a snapshot of lifetime hit/miss counters. Clear does not
// reset them.
type CacheStats struct {
	Hits   uint64
	Misses uint64
}

// NewCache creates an empty classification cache.
func NewCache() *Cache {
	return &Cache{ops: make(map[string]Op)}
}

// GetOrClassify returns the Op for text, classifying and storing it on first
// sight. Keys are whitespace-trimmed. Concurrent first sights of the same
// text classify once.
func (c *Cache) GetOrClassify(text string) Op {
	text = strings.TrimSpace(text)

	c.mu.RLock()
	op, ok := c.ops[text]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return op
	}
	c.misses.Add(1)

	v, _, _ := c.sf.Do(text, func() (any, error) {
		op := Classify(text)
		c.mu.Lock()
		c.ops[text] = op
		c.mu.Unlock()
		return op, nil
	})
	return v.(Op)
}

// Clear drops all cached classifications.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.ops = make(map[string]Op)
	c.mu.Unlock()
}

// Len reports the number of cached classifications.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ops)
}

// Stats returns lifetime hit/miss counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}
