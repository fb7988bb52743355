// Package snap ranks candidate snap points around the cursor.
package snap

import (
	"sort"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/geom"
)

// Candidate is a snap point together with its distance from the cursor.
type Candidate struct {
	Distance float64
	Point    drawing.SnapPoint
}

// Collection is an ordered list of candidates with a cyclic cursor.
// Candidates are ordered by distance, then by snap type priority.
type Collection struct {
	items   []Candidate
	current int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add inserts a candidate at its ranked position and resets the cursor to
// the best candidate.
func (c *Collection) Add(distance float64, sp drawing.SnapPoint) {
	cand := Candidate{Distance: distance, Point: sp}
	i := sort.Search(len(c.items), func(i int) bool {
		return less(cand, c.items[i])
	})
	c.items = append(c.items, Candidate{})
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = cand
	c.current = 0
}

func less(a, b Candidate) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Point.Type.Priority() < b.Point.Type.Priority()
}

// Len returns the number of candidates.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns the candidates in ranked order.
func (c *Collection) Items() []Candidate {
	return append([]Candidate(nil), c.items...)
}

// Current returns the candidate under the cursor.
func (c *Collection) Current() (drawing.SnapPoint, bool) {
	if len(c.items) == 0 {
		return drawing.SnapPoint{}, false
	}
	return c.items[c.current].Point, true
}

// Next advances the cursor, wrapping to the first candidate.
func (c *Collection) Next() (drawing.SnapPoint, bool) {
	if len(c.items) == 0 {
		return drawing.SnapPoint{}, false
	}
	c.current = (c.current + 1) % len(c.items)
	return c.items[c.current].Point, true
}

// Previous moves the cursor back, wrapping to the last candidate.
func (c *Collection) Previous() (drawing.SnapPoint, bool) {
	if len(c.items) == 0 {
		return drawing.SnapPoint{}, false
	}
	c.current = (c.current - 1 + len(c.items)) % len(c.items)
	return c.items[c.current].Point, true
}

// Reset removes every candidate.
func (c *Collection) Reset() {
	c.items = nil
	c.current = 0
}

// Find collects the snap points of items lying within radius of pt whose
// type is enabled by mask.
func Find(items []drawing.Drawable, pt geom.Point, radius float64, mask Mask) *Collection {
	c := NewCollection()
	for _, d := range items {
		for _, sp := range d.SnapPoints() {
			if !mask.Has(sp.Type) {
				continue
			}
			if dist := sp.Location.DistanceTo(pt); dist <= radius {
				c.Add(dist, sp)
			}
		}
	}
	return c
}

// Mask is a set of enabled snap point types.
type Mask uint8

// MaskAll enables every snap type.
const MaskAll Mask = 0xff

// MaskOf builds a mask from the given types.
func MaskOf(types ...drawing.SnapPointType) Mask {
	var m Mask
	for _, t := range types {
		m |= 1 << t
	}
	return m
}

// Has reports whether t is enabled.
func (m Mask) Has(t drawing.SnapPointType) bool {
	return m&(1<<t) != 0
}

// ParseType maps a snap type name to its value.
func ParseType(name string) (drawing.SnapPointType, bool) {
	for t := drawing.SnapNode; t <= drawing.SnapQuadrant; t++ {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}
