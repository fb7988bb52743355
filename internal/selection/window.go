package selection

import (
	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/geom"
)

// Window is a rubber-band selection rectangle. P1 is the corner picked
// first, P2 the live or final second corner.
//
// Dragging left to right (P2.X > P1.X) is a window selection that only
// takes fully enclosed items; dragging right to left is a crossing
// selection that takes any overlapping item.
type Window struct {
	P1 geom.Point
	P2 geom.Point
}

// WindowSelection reports whether the window is in strict containment mode.
func (w Window) WindowSelection() bool {
	return w.P2.X > w.P1.X
}

// Extents returns the normalized rectangle.
func (w Window) Extents() geom.Extents {
	return geom.FromPoints(w.P1, w.P2)
}

// Corners returns the four corners starting at P1, in drawing order.
func (w Window) Corners() [4]geom.Point {
	return [4]geom.Point{
		w.P1,
		geom.Pt(w.P2.X, w.P1.Y),
		w.P2,
		geom.Pt(w.P1.X, w.P2.Y),
	}
}

// Matches reports whether an item with the given extents is selected:
// containment in window mode, overlap in crossing mode.
func (w Window) Matches(ext geom.Extents) bool {
	if w.WindowSelection() {
		return w.Extents().Contains(ext)
	}
	return w.Extents().Intersects(ext)
}

// Select returns the items matched by the window.
func (w Window) Select(items []drawing.Drawable) *Set {
	s := NewSet()
	for _, d := range items {
		if w.Matches(d.Extents()) {
			s.Add(d)
		}
	}
	return s
}

// SelectControlPoints returns the stretch points whose base point lies in
// the window. Control points have no size, so containment is used in both
// modes.
func (w Window) SelectControlPoints(items []drawing.Drawable) *CPSet {
	ext := w.Extents()
	s := NewCPSet()
	for _, d := range items {
		for _, cp := range d.StretchPoints() {
			if ext.ContainsPoint(cp.BasePoint) {
				s.Add(d, cp.Index)
			}
		}
	}
	return s
}
