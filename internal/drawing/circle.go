package drawing

import (
	"math"

	"github.com/dshills/stormcad/internal/geom"
)

// Circle is a full circle.
type Circle struct {
	base
	Center geom.Point
	Radius float64
}

// NewCircle creates a circle.
func NewCircle(center geom.Point, radius float64) *Circle {
	return &Circle{base: newBase(), Center: center, Radius: radius}
}

func (c *Circle) Extents() geom.Extents {
	return geom.FromPoints(
		geom.Pt(c.Center.X-c.Radius, c.Center.Y-c.Radius),
		geom.Pt(c.Center.X+c.Radius, c.Center.Y+c.Radius),
	)
}

func (c *Circle) Contains(pt geom.Point, pickBoxSize float64) bool {
	return math.Abs(pt.DistanceTo(c.Center)-c.Radius) <= pickBoxSize/2
}

func (c *Circle) ControlPoints() []ControlPoint {
	return newControlPoints(
		pointCP("Center point", c.Center),
		ControlPoint{
			Name:      "Radius",
			Type:      ControlPointDistance,
			BasePoint: c.Center,
			Location:  c.Center.Add(geom.Vec(c.Radius, 0)),
		},
	)
}

func (c *Circle) StretchPoints() []ControlPoint {
	return newControlPoints(pointCP("Center point", c.Center))
}

func (c *Circle) SnapPoints() []SnapPoint {
	snaps := []SnapPoint{{Name: "Center point", Type: SnapCenter, Location: c.Center}}
	for i, name := range []string{"East quadrant", "North quadrant", "West quadrant", "South quadrant"} {
		snaps = append(snaps, SnapPoint{
			Name:     name,
			Type:     SnapQuadrant,
			Location: c.Center.Add(geom.Polar(c.Radius, float64(i)*math.Pi/2)),
		})
	}
	return snaps
}

func (c *Circle) Clone() Drawable {
	return &Circle{base: c.base.clone(), Center: c.Center, Radius: c.Radius}
}

func (c *Circle) TransformBy(m geom.Matrix) {
	c.Center = c.Center.Transform(m)
	c.Radius *= m.ScaleFactor()
}

func (c *Circle) TransformControlPoint(index int, m geom.Matrix) {
	switch index {
	case 0:
		c.Center = c.Center.Transform(m)
	case 1:
		loc := c.Center.Add(geom.Vec(c.Radius, 0)).Transform(m)
		c.Radius = loc.DistanceTo(c.Center)
	}
}

func (c *Circle) TransformStretchPoint(index int, m geom.Matrix) {
	if index == 0 {
		c.Center = c.Center.Transform(m)
	}
}
