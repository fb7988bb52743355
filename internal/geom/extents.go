package geom

import "math"

// Extents is an axis-aligned bounding box. The zero value is empty.
type Extents struct {
	Min   Point
	Max   Point
	valid bool
}

// FromPoints returns the normalized extents spanning p1 and p2.
func FromPoints(p1, p2 Point) Extents {
	var e Extents
	e.Add(p1)
	e.Add(p2)
	return e
}

// IsEmpty reports whether no point has been added.
func (e Extents) IsEmpty() bool {
	return !e.valid
}

// Add grows the extents to include p.
func (e *Extents) Add(p Point) {
	if !e.valid {
		e.Min, e.Max, e.valid = p, p, true
		return
	}
	e.Min.X = math.Min(e.Min.X, p.X)
	e.Min.Y = math.Min(e.Min.Y, p.Y)
	e.Max.X = math.Max(e.Max.X, p.X)
	e.Max.Y = math.Max(e.Max.Y, p.Y)
}

// AddExtents grows the extents to include o.
func (e *Extents) AddExtents(o Extents) {
	if o.IsEmpty() {
		return
	}
	e.Add(o.Min)
	e.Add(o.Max)
}

// Width returns the horizontal size.
func (e Extents) Width() float64 {
	if !e.valid {
		return 0
	}
	return e.Max.X - e.Min.X
}

// Height returns the vertical size.
func (e Extents) Height() float64 {
	if !e.valid {
		return 0
	}
	return e.Max.Y - e.Min.Y
}

// Center returns the midpoint of the extents.
func (e Extents) Center() Point {
	return e.Min.Mid(e.Max)
}

// ContainsPoint reports whether p lies within the extents, boundary included.
func (e Extents) ContainsPoint(p Point) bool {
	return e.valid &&
		p.X >= e.Min.X && p.X <= e.Max.X &&
		p.Y >= e.Min.Y && p.Y <= e.Max.Y
}

// Contains reports whether o lies entirely within e on both axes.
func (e Extents) Contains(o Extents) bool {
	return e.valid && o.valid &&
		o.Min.X >= e.Min.X && o.Max.X <= e.Max.X &&
		o.Min.Y >= e.Min.Y && o.Max.Y <= e.Max.Y
}

// Intersects reports whether e and o overlap on both axes.
func (e Extents) Intersects(o Extents) bool {
	return e.valid && o.valid &&
		e.Min.X <= o.Max.X && e.Max.X >= o.Min.X &&
		e.Min.Y <= o.Max.Y && e.Max.Y >= o.Min.Y
}

// Inflate returns the extents grown by d on every side.
func (e Extents) Inflate(d float64) Extents {
	if !e.valid {
		return e
	}
	return Extents{
		Min:   Point{X: e.Min.X - d, Y: e.Min.Y - d},
		Max:   Point{X: e.Max.X + d, Y: e.Max.Y + d},
		valid: true,
	}
}
