package drawing

import (
	"fmt"

	"github.com/dshills/stormcad/internal/geom"
)

// Polyline is a chain of segments, optionally closed.
type Polyline struct {
	base
	Points []geom.Point
	Closed bool
}

// NewPolyline creates a polyline through the given points.
func NewPolyline(closed bool, pts ...geom.Point) *Polyline {
	return &Polyline{base: newBase(), Points: append([]geom.Point(nil), pts...), Closed: closed}
}

// NewRectangle creates a closed polyline with corners p1 and p2.
func NewRectangle(p1, p2 geom.Point) *Polyline {
	p := NewPolyline(true)
	p.SetRectangle(p1, p2)
	return p
}

// SetRectangle replaces the vertices with the four corners spanned by p1
// and p2, reusing the vertex slice when it already has four entries.
func (p *Polyline) SetRectangle(p1, p2 geom.Point) {
	if len(p.Points) != 4 {
		p.Points = make([]geom.Point, 4)
	}
	p.Points[0] = p1
	p.Points[1] = geom.Pt(p2.X, p1.Y)
	p.Points[2] = p2
	p.Points[3] = geom.Pt(p1.X, p2.Y)
}

func (p *Polyline) Extents() geom.Extents {
	var e geom.Extents
	for _, pt := range p.Points {
		e.Add(pt)
	}
	return e
}

func (p *Polyline) Contains(pt geom.Point, pickBoxSize float64) bool {
	for _, seg := range p.segments() {
		if distanceToSegment(pt, seg[0], seg[1]) <= pickBoxSize/2 {
			return true
		}
	}
	return false
}

func (p *Polyline) segments() [][2]geom.Point {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	segs := make([][2]geom.Point, 0, n)
	for i := 0; i+1 < n; i++ {
		segs = append(segs, [2]geom.Point{p.Points[i], p.Points[i+1]})
	}
	if p.Closed && n > 2 {
		segs = append(segs, [2]geom.Point{p.Points[n-1], p.Points[0]})
	}
	return segs
}

func (p *Polyline) ControlPoints() []ControlPoint {
	cps := make([]ControlPoint, len(p.Points))
	for i, pt := range p.Points {
		cps[i] = pointCP(fmt.Sprintf("Vertex %d", i+1), pt)
	}
	return newControlPoints(cps...)
}

func (p *Polyline) StretchPoints() []ControlPoint {
	return p.ControlPoints()
}

func (p *Polyline) SnapPoints() []SnapPoint {
	snaps := make([]SnapPoint, 0, 2*len(p.Points))
	for i, pt := range p.Points {
		snaps = append(snaps, SnapPoint{Name: fmt.Sprintf("Vertex %d", i+1), Type: SnapEnd, Location: pt})
	}
	for _, seg := range p.segments() {
		snaps = append(snaps, SnapPoint{Name: "Mid point", Type: SnapMiddle, Location: seg[0].Mid(seg[1])})
	}
	return snaps
}

func (p *Polyline) Clone() Drawable {
	return &Polyline{base: p.base.clone(), Points: append([]geom.Point(nil), p.Points...), Closed: p.Closed}
}

func (p *Polyline) TransformBy(m geom.Matrix) {
	for i := range p.Points {
		p.Points[i] = p.Points[i].Transform(m)
	}
}

func (p *Polyline) TransformControlPoint(index int, m geom.Matrix) {
	if index >= 0 && index < len(p.Points) {
		p.Points[index] = p.Points[index].Transform(m)
	}
}

func (p *Polyline) TransformStretchPoint(index int, m geom.Matrix) {
	p.TransformControlPoint(index, m)
}
