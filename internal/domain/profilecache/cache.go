// Package profilecache caches standard profiles between reads. Profiles are
// read-mostly: every comparison resolves one, while edits are rare, so a
// small bounded cache with explicit invalidation on update/delete is enough.
package profilecache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gitscout/gitscout/internal/domain/model"
)

// Cache stores recently resolved profiles keyed by id.
type Cache interface {
	// Get returns a cached profile and whether it was present.
	Get(ctx context.Context, id string) (model.StandardProfile, bool)

	// Put stores a profile, evicting the oldest entry when full.
	Put(ctx context.Context, profile model.StandardProfile)

	// Invalidate drops a profile after an update or delete so the next read
	// goes back to the store.
	Invalidate(ctx context.Context, id string)

	Size() int64
}

// entry is a single cached profile in the insertion-ordered list.
type entry struct {
	id      string
	profile model.StandardProfile
	next    *entry
}

// inMemoryCache implements Cache with a map plus a singly linked insertion
// list; when the cache is full the oldest entry (list tail) is evicted.
type inMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	head    *entry
	maxSize int
	size    atomic.Int64
}

// NewInMemoryCache creates a bounded in-memory cache with options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 1024, // default max size
	}

	for _, opt := range opts {
		opt(c)
	}

	c.entries = make(map[string]*entry)
	return c
}

func (c *inMemoryCache) Get(ctx context.Context, id string) (model.StandardProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return model.StandardProfile{}, false
	}
	return e.profile, true
}

func (c *inMemoryCache) Put(ctx context.Context, profile model.StandardProfile) {
	if profile.ID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[profile.ID]; ok {
		e.profile = profile
		return
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	e := &entry{id: profile.ID, profile: profile, next: c.head}
	c.head = e
	c.entries[profile.ID] = e
	c.size.Add(1)
}

func (c *inMemoryCache) Invalidate(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return
	}
	delete(c.entries, id)
	c.unlink(e)
	c.size.Add(-1)
}

// unlink removes e from the insertion list. Must hold c.mu.
func (c *inMemoryCache) unlink(e *entry) {
	if c.head == e {
		c.head = e.next
		return
	}
	current := c.head
	for current != nil && current.next != e {
		current = current.next
	}
	if current != nil {
		current.next = e.next
	}
}

// evictOldest drops the list tail. Must hold c.mu.
func (c *inMemoryCache) evictOldest() {
	if c.head == nil {
		return
	}
	if c.head.next == nil {
		delete(c.entries, c.head.id)
		c.head = nil
		c.size.Add(-1)
		return
	}

	prev := c.head
	current := c.head.next
	for current.next != nil {
		prev = current
		current = current.next
	}
	prev.next = nil
	delete(c.entries, current.id)
	c.size.Add(-1)
}

func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}
