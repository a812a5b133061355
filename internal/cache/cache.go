// Package cache holds the process-wide query cache: a read-through store
// keyed by resource plus serialized parameters, with a staleness window,
// explicit prefix invalidation and garbage collection of unused entries.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// Cache is an LRU cache whose entries age through two windows: after the
// stale window an entry is refetched on next access (the value is kept for
// inspection until then), after the gc window CleanExpired removes it.
// Invalidate marks entries stale immediately.
type Cache struct {
	mu        sync.Mutex
	maxSize   int
	staleTime time.Duration
	gcTime    time.Duration
	items     map[string]*list.Element
	lru       *list.List
}

type entry struct {
	key         string
	value       any
	fetchedAt   time.Time
	invalidated bool
}

// New creates a cache with the given capacity and freshness windows.
func New(maxSize int, staleTime, gcTime time.Duration) *Cache {
	return &Cache{
		maxSize:   maxSize,
		staleTime: staleTime,
		gcTime:    gcTime,
		items:     make(map[string]*list.Element),
		lru:       list.New(),
	}
}

// Get returns the cached value for key when it is still fresh. Stale or
// invalidated entries report a miss so the caller refetches.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return nil, false
	}

	e := elem.Value.(*entry)
	if e.invalidated || time.Since(e.fetchedAt) > c.staleTime {
		return nil, false
	}

	c.lru.MoveToFront(elem)
	return e.value, true
}

// Set stores a fresh value for key.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry{
		key:       key,
		value:     value,
		fetchedAt: time.Now(),
	}

	if elem, exists := c.items[key]; exists {
		elem.Value = e
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(e)
	c.items[key] = elem

	if c.lru.Len() > c.maxSize {
		oldest := c.lru.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Invalidate marks every entry whose key starts with prefix as stale and
// returns how many entries were touched. The next access refetches.
func (c *Cache) Invalidate(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	touched := 0
	for key, elem := range c.items {
		if strings.HasPrefix(key, prefix) {
			elem.Value.(*entry).invalidated = true
			touched++
		}
	}
	return touched
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.items[key]; exists {
		c.removeElement(elem)
	}
}

func (c *Cache) removeElement(elem *list.Element) {
	e := elem.Value.(*entry)
	delete(c.items, e.key)
	c.lru.Remove(elem)
}

// CleanExpired removes entries older than the gc window and returns the
// count of removed items.
func (c *Cache) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	var toRemove []*list.Element
	for elem := c.lru.Front(); elem != nil; elem = elem.Next() {
		e := elem.Value.(*entry)
		if time.Since(e.fetchedAt) > c.gcTime {
			toRemove = append(toRemove, elem)
		}
	}

	for _, elem := range toRemove {
		c.removeElement(elem)
	}

	return len(toRemove)
}

// Size returns the current number of entries, fresh or stale.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Has reports whether key is present at all, fresh or stale.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.items[key]
	return exists
}

// IsFresh reports whether key is present and would be served from memory.
func (c *Cache) IsFresh(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		return false
	}
	e := elem.Value.(*entry)
	return !e.invalidated && time.Since(e.fetchedAt) <= c.staleTime
}
