package drawing

import (
	"math"

	"github.com/dshills/stormcad/internal/geom"
)

// Line is a straight segment.
type Line struct {
	base
	P1 geom.Point
	P2 geom.Point
}

// NewLine creates a line from p1 to p2.
func NewLine(p1, p2 geom.Point) *Line {
	return &Line{base: newBase(), P1: p1, P2: p2}
}

func (l *Line) Extents() geom.Extents {
	return geom.FromPoints(l.P1, l.P2)
}

func (l *Line) Contains(pt geom.Point, pickBoxSize float64) bool {
	return distanceToSegment(pt, l.P1, l.P2) <= pickBoxSize/2
}

func (l *Line) ControlPoints() []ControlPoint {
	return newControlPoints(
		pointCP("Start point", l.P1),
		pointCP("End point", l.P2),
		pointCP("Mid point", l.P1.Mid(l.P2)),
	)
}

func (l *Line) StretchPoints() []ControlPoint {
	return newControlPoints(
		pointCP("Start point", l.P1),
		pointCP("End point", l.P2),
	)
}

func (l *Line) SnapPoints() []SnapPoint {
	return []SnapPoint{
		{Name: "Start point", Type: SnapEnd, Location: l.P1},
		{Name: "End point", Type: SnapEnd, Location: l.P2},
		{Name: "Mid point", Type: SnapMiddle, Location: l.P1.Mid(l.P2)},
	}
}

func (l *Line) Clone() Drawable {
	return &Line{base: l.base.clone(), P1: l.P1, P2: l.P2}
}

func (l *Line) TransformBy(m geom.Matrix) {
	l.P1 = l.P1.Transform(m)
	l.P2 = l.P2.Transform(m)
}

func (l *Line) TransformControlPoint(index int, m geom.Matrix) {
	switch index {
	case 0:
		l.P1 = l.P1.Transform(m)
	case 1:
		l.P2 = l.P2.Transform(m)
	case 2:
		l.TransformBy(m)
	}
}

func (l *Line) TransformStretchPoint(index int, m geom.Matrix) {
	l.TransformControlPoint(index, m)
}

// Length returns the length of the line.
func (l *Line) Length() float64 {
	return l.P1.DistanceTo(l.P2)
}

// distanceToSegment returns the distance from p to the segment ab.
func distanceToSegment(p, a, b geom.Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.DistanceTo(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	t = math.Max(0, math.Min(1, t))
	return p.DistanceTo(a.Add(ab.Scale(t)))
}
