package drawing

import (
	"fmt"

	"github.com/dshills/stormcad/internal/geom"
)

// Hatch is a filled closed polygon.
type Hatch struct {
	base
	Points []geom.Point
}

// NewHatch creates a filled polygon.
func NewHatch(pts ...geom.Point) *Hatch {
	h := &Hatch{base: newBase(), Points: append([]geom.Point(nil), pts...)}
	h.style.Fill = true
	return h
}

// SetRectangle replaces the outline with the rectangle spanned by p1 and p2.
func (h *Hatch) SetRectangle(p1, p2 geom.Point) {
	if len(h.Points) != 4 {
		h.Points = make([]geom.Point, 4)
	}
	h.Points[0] = p1
	h.Points[1] = geom.Pt(p2.X, p1.Y)
	h.Points[2] = p2
	h.Points[3] = geom.Pt(p1.X, p2.Y)
}

func (h *Hatch) Extents() geom.Extents {
	var e geom.Extents
	for _, pt := range h.Points {
		e.Add(pt)
	}
	return e
}

// Contains reports whether pt is inside the polygon or near its outline.
func (h *Hatch) Contains(pt geom.Point, pickBoxSize float64) bool {
	n := len(h.Points)
	if n == 0 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := h.Points[i], h.Points[j]
		if distanceToSegment(pt, a, b) <= pickBoxSize/2 {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) && pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func (h *Hatch) ControlPoints() []ControlPoint {
	cps := make([]ControlPoint, len(h.Points))
	for i, pt := range h.Points {
		cps[i] = pointCP(fmt.Sprintf("Vertex %d", i+1), pt)
	}
	return newControlPoints(cps...)
}

func (h *Hatch) StretchPoints() []ControlPoint {
	return h.ControlPoints()
}

func (h *Hatch) SnapPoints() []SnapPoint {
	snaps := make([]SnapPoint, len(h.Points))
	for i, pt := range h.Points {
		snaps[i] = SnapPoint{Name: fmt.Sprintf("Vertex %d", i+1), Type: SnapEnd, Location: pt}
	}
	return snaps
}

func (h *Hatch) Clone() Drawable {
	return &Hatch{base: h.base.clone(), Points: append([]geom.Point(nil), h.Points...)}
}

func (h *Hatch) TransformBy(m geom.Matrix) {
	for i := range h.Points {
		h.Points[i] = h.Points[i].Transform(m)
	}
}

func (h *Hatch) TransformControlPoint(index int, m geom.Matrix) {
	if index >= 0 && index < len(h.Points) {
		h.Points[index] = h.Points[index].Transform(m)
	}
}

func (h *Hatch) TransformStretchPoint(index int, m geom.Matrix) {
	h.TransformControlPoint(index, m)
}
