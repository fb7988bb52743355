// Package drawing holds the document model consumed by the input engine:
// drawables with their control and snap points, and the observable model
// and transient collections of a document.
package drawing

import (
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/stormcad/internal/geom"
)

// Drawable is a geometric item stored in a document collection.
type Drawable interface {
	// ID returns the identity of the drawable. Clones get a new ID.
	ID() uuid.UUID

	// Extents returns the bounding box of the drawable.
	Extents() geom.Extents

	// Contains reports whether pt lies on the drawable within a pick box
	// of the given size (world units).
	Contains(pt geom.Point, pickBoxSize float64) bool

	// ControlPoints returns the grips of the drawable. The list is rebuilt
	// on every call; indices are positions within the returned list.
	ControlPoints() []ControlPoint

	// StretchPoints returns the points moved by a stretch operation.
	StretchPoints() []ControlPoint

	// SnapPoints returns candidate locations for cursor snapping.
	SnapPoints() []SnapPoint

	// Clone returns a deep copy with a fresh ID.
	Clone() Drawable

	// TransformBy applies m to the whole drawable.
	TransformBy(m geom.Matrix)

	// TransformControlPoint applies m to the control point at index.
	TransformControlPoint(index int, m geom.Matrix)

	// TransformStretchPoint applies m to the stretch point at index.
	TransformStretchPoint(index int, m geom.Matrix)

	Style() Style
	SetStyle(s Style)
}

// Style describes how a drawable is rendered.
type Style struct {
	Color colorful.Color
	Fill  bool
}

// DefaultStyle is the style assigned to new drawables.
func DefaultStyle() Style {
	return Style{Color: colorful.Color{R: 1, G: 1, B: 1}}
}

// ControlPointType identifies how a control point is dragged.
type ControlPointType uint8

const (
	// ControlPointPoint is dragged to a new location.
	ControlPointPoint ControlPointType = iota
	// ControlPointAngle is dragged around its base point.
	ControlPointAngle
	// ControlPointDistance is dragged toward or away from its base point.
	ControlPointDistance
)

// String returns the type name.
func (t ControlPointType) String() string {
	switch t {
	case ControlPointPoint:
		return "point"
	case ControlPointAngle:
		return "angle"
	case ControlPointDistance:
		return "distance"
	default:
		return "unknown"
	}
}

// ControlPoint is a named handle on a drawable.
type ControlPoint struct {
	Name      string
	Type      ControlPointType
	BasePoint geom.Point
	Location  geom.Point
	// Index is the position within the owner's list, assigned on enumeration.
	Index int
}

func newControlPoints(cps ...ControlPoint) []ControlPoint {
	for i := range cps {
		cps[i].Index = i
	}
	return cps
}

func pointCP(name string, p geom.Point) ControlPoint {
	return ControlPoint{Name: name, Type: ControlPointPoint, BasePoint: p, Location: p}
}

// SnapPointType identifies the kind of snap point. Lower values rank first
// among candidates at equal distance.
type SnapPointType uint8

const (
	// SnapNode is a standalone point.
	SnapNode SnapPointType = iota
	SnapEnd
	SnapMiddle
	SnapCenter
	SnapQuadrant
)

// String returns the type name.
func (t SnapPointType) String() string {
	switch t {
	case SnapNode:
		return "node"
	case SnapEnd:
		return "end"
	case SnapMiddle:
		return "middle"
	case SnapCenter:
		return "center"
	case SnapQuadrant:
		return "quadrant"
	default:
		return "unknown"
	}
}

// Priority returns the ranking priority of the type.
func (t SnapPointType) Priority() int {
	return int(t)
}

// SnapPoint is a candidate location for magnetic cursor attraction.
type SnapPoint struct {
	Name     string
	Type     SnapPointType
	Location geom.Point
}

// base carries the identity and style shared by every drawable.
type base struct {
	id    uuid.UUID
	style Style
}

func newBase() base {
	return base{id: uuid.New(), style: DefaultStyle()}
}

func (b *base) ID() uuid.UUID    { return b.id }
func (b *base) Style() Style     { return b.style }
func (b *base) SetStyle(s Style) { b.style = s }

func (b base) clone() base {
	return base{id: uuid.New(), style: b.style}
}
