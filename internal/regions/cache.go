package regions

import (
	"sync"

	"github.com/couchcryptid/forecast-download-wizard/internal/observability"
)

// OptionSource answers the three option queries.
type OptionSource interface {
	Level1Options() []string
	Level2Options(level1 string) []string
	Level3Options(level1, level2 string) []string
}

// CachedIndex wraps an OptionSource with an in-memory LRU cache. It is safe
// for concurrent use.
type CachedIndex struct {
	inner   OptionSource
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedIndex creates a cache decorator around an option source.
func NewCachedIndex(inner OptionSource, maxEntries int, metrics *observability.Metrics) *CachedIndex {
	return &CachedIndex{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedIndex) Level1Options() []string {
	return c.lookup("level1", "level1", c.inner.Level1Options)
}

func (c *CachedIndex) Level2Options(level1 string) []string {
	return c.lookup("level2", "level2:"+level1, func() []string {
		return c.inner.Level2Options(level1)
	})
}

func (c *CachedIndex) Level3Options(level1, level2 string) []string {
	// NUL cannot occur in region names, so the key is unambiguous.
	return c.lookup("level3", "level3:"+level1+"\x00"+level2, func() []string {
		return c.inner.Level3Options(level1, level2)
	})
}

// Len reports the number of cached option lists.
func (c *CachedIndex) Len() int { return c.cache.len() }

func (c *CachedIndex) lookup(level, key string, load func() []string) []string {
	if v, ok := c.cache.get(key); ok {
		c.metrics.OptionCache.WithLabelValues(level, "hit").Inc()
		return clone(v)
	}
	c.metrics.OptionCache.WithLabelValues(level, "miss").Inc()
	v := load()
	c.cache.put(key, clone(v))
	return v
}

func clone(v []string) []string {
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// lruCache is a simple thread-safe LRU cache for option lists.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []string
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) get(key string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.unlink(c.tail)
}
