package drawing

import (
	"sync"

	"github.com/google/uuid"
)

// ChangeKind identifies a collection mutation.
type ChangeKind uint8

const (
	// ChangeAdd is raised after an item is added.
	ChangeAdd ChangeKind = iota
	// ChangeRemove is raised after an item is removed.
	ChangeRemove
	// ChangeUpdate is raised after an item is mutated in place.
	ChangeUpdate
	// ChangeClear is raised after the collection is emptied.
	ChangeClear
)

// String returns the change kind name.
func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeUpdate:
		return "update"
	case ChangeClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Change describes a collection mutation. Item is nil for ChangeClear.
type Change struct {
	Kind ChangeKind
	Item Drawable
}

// Collection is an ordered set of drawables keyed by ID.
//
// Collection is safe for concurrent use. Item mutations made through Update
// happen under the write lock, so readers using Each never observe a
// half-applied edit.
type Collection struct {
	mu    sync.RWMutex
	items []Drawable
	index map[uuid.UUID]int

	obsMu     sync.Mutex
	observers map[int]func(Change)
	nextObs   int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		index:     make(map[uuid.UUID]int),
		observers: make(map[int]func(Change)),
	}
}

// OnChange registers an observer and returns a function that removes it.
func (c *Collection) OnChange(fn func(Change)) func() {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()

	id := c.nextObs
	c.nextObs++
	c.observers[id] = fn
	return func() {
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		delete(c.observers, id)
	}
}

func (c *Collection) notify(ch Change) {
	c.obsMu.Lock()
	fns := make([]func(Change), 0, len(c.observers))
	for i := 0; i < c.nextObs; i++ {
		if fn, ok := c.observers[i]; ok {
			fns = append(fns, fn)
		}
	}
	c.obsMu.Unlock()

	for _, fn := range fns {
		fn(ch)
	}
}

// Add appends d. It returns false if d is nil or already present.
func (c *Collection) Add(d Drawable) bool {
	if d == nil {
		return false
	}
	c.mu.Lock()
	if _, exists := c.index[d.ID()]; exists {
		c.mu.Unlock()
		return false
	}
	c.index[d.ID()] = len(c.items)
	c.items = append(c.items, d)
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeAdd, Item: d})
	return true
}

// Remove deletes d. It returns false if d was not present.
func (c *Collection) Remove(d Drawable) bool {
	if d == nil {
		return false
	}
	c.mu.Lock()
	i, exists := c.index[d.ID()]
	if !exists {
		c.mu.Unlock()
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, d.ID())
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID()] = j
	}
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeRemove, Item: d})
	return true
}

// Clear removes every item.
func (c *Collection) Clear() {
	c.mu.Lock()
	c.items = nil
	c.index = make(map[uuid.UUID]int)
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeClear})
}

// Update runs fn under the write lock and raises ChangeUpdate.
// It returns false without calling fn if d is not in the collection.
func (c *Collection) Update(d Drawable, fn func()) bool {
	c.mu.Lock()
	if _, exists := c.index[d.ID()]; !exists {
		c.mu.Unlock()
		return false
	}
	fn()
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeUpdate, Item: d})
	return true
}

// Contains reports whether d is in the collection.
func (c *Collection) Contains(d Drawable) bool {
	if d == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.index[d.ID()]
	return exists
}

// Get returns the item with the given ID.
func (c *Collection) Get(id uuid.UUID) (Drawable, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, exists := c.index[id]
	if !exists {
		return nil, false
	}
	return c.items[i], true
}

// Len returns the number of items.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Items returns a snapshot of the items in insertion order.
func (c *Collection) Items() []Drawable {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Drawable, len(c.items))
	copy(out, c.items)
	return out
}

// Each calls fn for every item while holding the read lock.
// fn must not modify the collection.
func (c *Collection) Each(fn func(Drawable)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, d := range c.items {
		fn(d)
	}
}
