// Package selection provides the selection sets built by the selection
// getters and the window/crossing algorithm that fills them.
package selection

import (
	"github.com/google/uuid"

	"github.com/dshills/stormcad/internal/drawing"
)

// ChangeKind identifies a selection mutation.
type ChangeKind uint8

const (
	// Added is raised after an item joins the set.
	Added ChangeKind = iota
	// Removed is raised after an item leaves the set.
	Removed
	// Cleared is raised after a non-empty set is emptied.
	Cleared
)

// Set is a set of drawables with unique membership.
//
// Set is not safe for concurrent use; it is owned by the editor and only
// touched from the thread running the active command or its getter.
type Set struct {
	items    []drawing.Drawable
	index    map[uuid.UUID]int
	onChange []func(ChangeKind, drawing.Drawable)
}

// NewSet creates a set holding items.
func NewSet(items ...drawing.Drawable) *Set {
	s := &Set{index: make(map[uuid.UUID]int)}
	for _, d := range items {
		s.Add(d)
	}
	return s
}

// OnChange registers fn to be called after each effective mutation.
func (s *Set) OnChange(fn func(ChangeKind, drawing.Drawable)) {
	s.onChange = append(s.onChange, fn)
}

func (s *Set) notify(kind ChangeKind, d drawing.Drawable) {
	for _, fn := range s.onChange {
		fn(kind, d)
	}
}

// Add inserts d and reports whether it was not already present.
func (s *Set) Add(d drawing.Drawable) bool {
	if d == nil {
		return false
	}
	if _, ok := s.index[d.ID()]; ok {
		return false
	}
	s.index[d.ID()] = len(s.items)
	s.items = append(s.items, d)
	s.notify(Added, d)
	return true
}

// Remove deletes d and reports whether it was present.
func (s *Set) Remove(d drawing.Drawable) bool {
	if d == nil {
		return false
	}
	i, ok := s.index[d.ID()]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, d.ID())
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID()] = j
	}
	s.notify(Removed, d)
	return true
}

// Contains reports whether d is a member.
func (s *Set) Contains(d drawing.Drawable) bool {
	if d == nil {
		return false
	}
	_, ok := s.index[d.ID()]
	return ok
}

// Clear removes every member.
func (s *Set) Clear() {
	if len(s.items) == 0 {
		return
	}
	s.items = nil
	s.index = make(map[uuid.UUID]int)
	s.notify(Cleared, nil)
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.items)
}

// Items returns the members in insertion order.
func (s *Set) Items() []drawing.Drawable {
	return append([]drawing.Drawable(nil), s.items...)
}

// UnionWith adds every member of o.
func (s *Set) UnionWith(o *Set) {
	if o == nil {
		return
	}
	for _, d := range o.items {
		s.Add(d)
	}
}

// Clone returns an independent copy without observers.
func (s *Set) Clone() *Set {
	return NewSet(s.items...)
}
