// Package memory implements the entity stores as in-memory
// collections. State lives for the lifetime of the process; there is
// no persistence layer behind it.
package memory

import (
	"sync"
)

// collection is a thread-safe slice of records with integer identity.
// New IDs are assigned as max existing ID plus one, so IDs are never
// reused within a run even after deletions at the tail.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
	getID func(T) int
	setID func(T, int) T
	clone func(T) T
}

func newCollection[T any](getID func(T) int, setID func(T, int) T, clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{getID: getID, setID: setID, clone: clone}
}

func (c *collection[T]) nextID() int {
	max := 0
	for _, it := range c.items {
		if id := c.getID(it); id > max {
			max = id
		}
	}
	return max + 1
}

// Add assigns a fresh ID and appends the record.
func (c *collection[T]) Add(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	item = c.setID(item, c.nextID())
	c.items = append(c.items, c.clone(item))
	return item
}

// Get returns a copy of the record with the given ID.
func (c *collection[T]) Get(id int) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.getID(it) == id {
			return c.clone(it), true
		}
	}
	var zero T
	return zero, false
}

// Update replaces the record whose ID matches item's ID. Unknown IDs
// are a no-op reported as false; nothing is inserted.
func (c *collection[T]) Update(item T) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.getID(item)
	for i, it := range c.items {
		if c.getID(it) == id {
			c.items[i] = c.clone(item)
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes the record with the given ID.
func (c *collection[T]) Delete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if c.getID(it) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of all records in insertion order.
func (c *collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, c.clone(it))
	}
	return out
}

// Find returns the first record matching the predicate.
func (c *collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if match(it) {
			return c.clone(it), true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of stored records.
func (c *collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
