package cache

import (
	"container/list"
	"sync"

	"github.com/matzehuels/aasgraph/pkg/model"
)

// Identity keeps at most one live object per identifier, evicting the
// least recently used entry once it holds size objects. It is safe for
// concurrent use; the cached objects themselves are not.
type Identity struct {
	mu    sync.Mutex
	size  int
	ll    *list.List
	items map[model.Identifier]*list.Element
}

// NewIdentity returns an identity cache bounded to size objects. A size
// of zero or less means unbounded.
func NewIdentity(size int) *Identity {
	return &Identity{
		size:  size,
		ll:    list.New(),
		items: make(map[model.Identifier]*list.Element),
	}
}

// Get returns the cached object for id.
func (c *Identity) Get(id model.Identifier) (model.Identifiable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[id]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(model.Identifiable), true
}

// Put caches obj and returns the canonical instance for its identifier.
// If another instance is cached, obj is reconciled into it and the cached
// instance is returned; obj must not be used afterwards.
func (c *Identity) Put(obj model.Identifiable) (model.Identifiable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := obj.Identification()
	if el, ok := c.items[id]; ok {
		c.ll.MoveToFront(el)
		cached := el.Value.(model.Identifiable)
		if cached == obj {
			return cached, nil
		}
		if err := model.UpdateFrom(cached, obj); err != nil {
			return nil, err
		}
		return cached, nil
	}
	c.items[id] = c.ll.PushFront(obj)
	if c.size > 0 && c.ll.Len() > c.size {
		oldest := c.ll.Back()
		c.ll.Remove(oldest)
		delete(c.items, oldest.Value.(model.Identifiable).Identification())
	}
	return obj, nil
}

// Remove drops id from the cache.
func (c *Identity) Remove(id model.Identifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[id]; ok {
		c.ll.Remove(el)
		delete(c.items, id)
	}
}

// Len returns the number of cached objects.
func (c *Identity) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
