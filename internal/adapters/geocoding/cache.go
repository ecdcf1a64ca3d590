package geocoding

import (
	"context"
	"strings"
	"sync"

	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/pkg/metrics"
)

// CachedLookup wraps a Lookup with an in-memory LRU cache.
// Only successful lookups are cached so "not found" can be retried later.
type CachedLookup struct {
	inner Lookup
	cache *lruCache
}

// NewCachedLookup creates a cache decorator holding at most maxEntries.
func NewCachedLookup(inner Lookup, maxEntries int) *CachedLookup {
	return &CachedLookup{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

// Lookup serves from cache or delegates to the wrapped Lookup.
func (c *CachedLookup) Lookup(ctx context.Context, query string) (spacetime.Location, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if loc, ok := c.cache.get(key); ok {
		metrics.RecordGeocodeCache(true)
		return loc, nil
	}
	metrics.RecordGeocodeCache(false)
	loc, err := c.inner.Lookup(ctx, query)
	if err != nil {
		return loc, err
	}
	metrics.UpdateGeocodeCacheSize(c.cache.put(key, loc))
	return loc, nil
}

type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value spacetime.Location
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (spacetime.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return spacetime.Location{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

// put stores value and returns the resulting size. A non-positive capacity
// stores nothing.
func (c *lruCache) put(key string, value spacetime.Location) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries <= 0 {
		return 0
	}
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return len(c.entries)
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
	return len(c.entries)
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
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

func (c *lruCache) remove(e *entry) {
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
	c.remove(c.tail)
}
