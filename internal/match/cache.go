package match

import (
	"container/list"
	"sync"
)

// DefaultCacheCapacity bounds the memo cache when no explicit capacity is
// configured.
const DefaultCacheCapacity = 100_000

type cacheKey struct {
	query  string
	source Source
}

type cacheEntry struct {
	key    cacheKey
	result Result
}

// resultCache is a mutex-guarded LRU of match results. Concurrent lookups
// of a missing key may race to compute the same result; the loser's insert
// simply refreshes the entry, never corrupts it.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[cacheKey]*list.Element
}

func newResultCache(capacity int) *resultCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &resultCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[cacheKey]*list.Element),
	}
}

func (c *resultCache) get(key cacheKey) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).result, true
}

func (c *resultCache) put(key cacheKey, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).result = result
		c.order.MoveToFront(elem)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, result: result})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
