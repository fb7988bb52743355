package selection

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/stormcad/internal/drawing"
)

// CPSet maps drawables to the set of their selected control-point indices.
type CPSet struct {
	order   []drawing.Drawable
	indices map[uuid.UUID]map[int]struct{}
}

// NewCPSet creates an empty control-point set.
func NewCPSet() *CPSet {
	return &CPSet{indices: make(map[uuid.UUID]map[int]struct{})}
}

// Add records the (d, index) pair and reports whether it was new.
func (s *CPSet) Add(d drawing.Drawable, index int) bool {
	if d == nil {
		return false
	}
	set, ok := s.indices[d.ID()]
	if !ok {
		set = make(map[int]struct{})
		s.indices[d.ID()] = set
		s.order = append(s.order, d)
	}
	if _, dup := set[index]; dup {
		return false
	}
	set[index] = struct{}{}
	return true
}

// Remove deletes the (d, index) pair and reports whether it was present.
func (s *CPSet) Remove(d drawing.Drawable, index int) bool {
	if d == nil {
		return false
	}
	set, ok := s.indices[d.ID()]
	if !ok {
		return false
	}
	if _, ok := set[index]; !ok {
		return false
	}
	delete(set, index)
	if len(set) == 0 {
		s.drop(d)
	}
	return true
}

func (s *CPSet) drop(d drawing.Drawable) {
	delete(s.indices, d.ID())
	for i, o := range s.order {
		if o.ID() == d.ID() {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Contains reports whether the (d, index) pair is present.
func (s *CPSet) Contains(d drawing.Drawable, index int) bool {
	if d == nil {
		return false
	}
	_, ok := s.indices[d.ID()][index]
	return ok
}

// Drawables returns the drawables with at least one selected index, in
// insertion order.
func (s *CPSet) Drawables() []drawing.Drawable {
	return append([]drawing.Drawable(nil), s.order...)
}

// Indices returns the selected indices of d in ascending order.
func (s *CPSet) Indices(d drawing.Drawable) []int {
	if d == nil {
		return nil
	}
	set := s.indices[d.ID()]
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Len returns the total number of (drawable, index) pairs.
func (s *CPSet) Len() int {
	n := 0
	for _, set := range s.indices {
		n += len(set)
	}
	return n
}

// UnionWith adds every pair of o.
func (s *CPSet) UnionWith(o *CPSet) {
	if o == nil {
		return
	}
	for _, d := range o.order {
		for _, i := range o.Indices(d) {
			s.Add(d, i)
		}
	}
}

// Clear removes every pair.
func (s *CPSet) Clear() {
	s.order = nil
	s.indices = make(map[uuid.UUID]map[int]struct{})
}

// ToSet returns the drawables as a plain selection set, dropping indices.
func (s *CPSet) ToSet() *Set {
	return NewSet(s.order...)
}
