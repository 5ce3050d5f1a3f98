package cache

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/hexrange/rangeset"
)

// LRU implements a range-set cache with least-recently-used eviction.
// It is safe for concurrent use.
type LRU struct {
	mu        sync.Mutex
	capacity  int
	size      int
	items     map[Key]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   Key
	value rangeset.Set
}

// NewLRU creates a new LRU cache holding at most capacity ranges in total.
func NewLRU(capacity int) *LRU {
	return &LRU{
		capacity:  capacity,
		items:     make(map[Key]*list.Element),
		evictList: list.New(),
	}
}

// Get returns a cached set. The returned set must be treated as read-only.
func (c *LRU) Get(key Key) (rangeset.Set, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry).value, true
	}
	c.misses.Add(1)
	return nil, false
}

// Set caches a set. The caller must not modify s afterwards.
func (c *LRU) Set(key Key, s rangeset.Set) {
	c.mu.Lock()
	defer c.mu.Unlock()

	itemSize := cost(s)

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		c.size += itemSize - cost(ent.Value.(*entry).value)
		ent.Value.(*entry).value = s
		c.evict()
		return
	}

	// Larger than the whole cache, don't cache.
	if itemSize > c.capacity {
		return
	}

	element := c.evictList.PushFront(&entry{key, s})
	c.items[key] = element
	c.size += itemSize
	c.evict()
}

// Invalidate removes entries matching the predicate.
func (c *LRU) Invalidate(predicate func(key Key) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for key, element := range c.items {
		if predicate(key) {
			toRemove = append(toRemove, element)
		}
	}

	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// Stats returns cache statistics.
func (c *LRU) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached queries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Size returns the number of cached ranges.
func (c *LRU) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *LRU) evict() {
	for c.size > c.capacity {
		element := c.evictList.Back()
		if element == nil {
			break
		}
		c.removeElement(element)
	}
}

func (c *LRU) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry)
	delete(c.items, kv.key)
	c.size -= cost(kv.value)
}

// cost counts an empty set as one range so it still occupies a slot.
func cost(s rangeset.Set) int {
	return max(len(s), 1)
}
