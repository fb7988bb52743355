package getter

import (
	"strings"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/geom"
)

// Invalid-input messages shared by the coordinate getters.
const (
	msgInvalidPoint   = "Invalid point"
	msgInvalidAngle   = "Invalid angle"
	msgNoCoordinates  = "Coordinate input is not accepted"
	msgInvalidInput   = "Invalid input"
	msgNegativeLength = "Negative distances are not allowed"
)

type pointHooks struct {
	g    *Getter[geom.Point]
	base *geom.Point
	line *drawing.Line
}

// NewPoint requests a point. With a base point the jig is a rubber-band
// line from the base to the cursor, and typed "@dx,dy" or "@d<a" input is
// relative to it.
func NewPoint(host Host, opts Options[geom.Point], base *geom.Point) *Getter[geom.Point] {
	h := &pointHooks{}
	if base != nil {
		b := *base
		h.base = &b
	}
	h.g = newGetter(host, opts, Acceptor[geom.Point](h))
	return h.g
}

func (h *pointHooks) Init() (Result[geom.Point], bool) {
	if h.base != nil {
		h.line = drawing.NewLine(*h.base, *h.base)
		h.g.SetJig(h.line)
	}
	return Result[geom.Point]{}, true
}

func (h *pointHooks) CoordsChanged(pt geom.Point) {
	if h.line != nil {
		h.g.UpdateJig(func() { h.line.P2 = pt })
	}
	h.g.opts.jig(pt)
}

func (h *pointHooks) AcceptCoordsInput(pt geom.Point) (geom.Point, bool, error) {
	return pt, true, nil
}

func (h *pointHooks) AcceptTextInput(text string) (geom.Point, bool, error) {
	pt, err := geom.ParsePoint(text, h.base)
	if err != nil {
		return geom.Point{}, false, invalid(msgInvalidPoint)
	}
	return pt, true, nil
}

type cornerHooks struct {
	g    *Getter[geom.Point]
	base geom.Point
	rect *drawing.Polyline
}

// NewCorner requests the opposite corner of an axis-aligned rectangle
// whose first corner is base. The jig is the rectangle itself.
func NewCorner(host Host, opts Options[geom.Point], base geom.Point) *Getter[geom.Point] {
	h := &cornerHooks{base: base}
	h.g = newGetter(host, opts, Acceptor[geom.Point](h))
	return h.g
}

func (h *cornerHooks) Init() (Result[geom.Point], bool) {
	h.rect = drawing.NewRectangle(h.base, h.base)
	h.g.SetJig(h.rect)
	return Result[geom.Point]{}, true
}

func (h *cornerHooks) CoordsChanged(pt geom.Point) {
	h.g.UpdateJig(func() { h.rect.SetRectangle(h.base, pt) })
	h.g.opts.jig(pt)
}

func (h *cornerHooks) AcceptCoordsInput(pt geom.Point) (geom.Point, bool, error) {
	return pt, true, nil
}

func (h *cornerHooks) AcceptTextInput(text string) (geom.Point, bool, error) {
	pt, err := geom.ParsePoint(text, &h.base)
	if err != nil {
		return geom.Point{}, false, invalid(msgInvalidPoint)
	}
	return pt, true, nil
}

type angleHooks struct {
	g    *Getter[float64]
	base geom.Point
	line *drawing.Line
}

// NewAngle requests an angle in radians measured at base. Clicks give the
// direction from base to the cursor; typed text is either a direction
// vector "x,y" or an angle in degrees.
func NewAngle(host Host, opts Options[float64], base geom.Point) *Getter[float64] {
	h := &angleHooks{base: base}
	h.g = newGetter(host, opts, Acceptor[float64](h))
	return h.g
}

func (h *angleHooks) Init() (Result[float64], bool) {
	h.line = drawing.NewLine(h.base, h.base)
	h.g.SetJig(h.line)
	return Result[float64]{}, true
}

func (h *angleHooks) CoordsChanged(pt geom.Point) {
	h.g.UpdateJig(func() { h.line.P2 = pt })
	h.g.opts.jig(pt.Sub(h.base).Angle())
}

func (h *angleHooks) AcceptCoordsInput(pt geom.Point) (float64, bool, error) {
	return pt.Sub(h.base).Angle(), true, nil
}

func (h *angleHooks) AcceptTextInput(text string) (float64, bool, error) {
	if strings.Contains(text, ",") {
		v, err := geom.ParseVector(text)
		if err != nil || v.Length() == 0 {
			return 0, false, invalid(msgInvalidAngle)
		}
		return v.Angle(), true, nil
	}
	deg, err := geom.ParseFloat(text)
	if err != nil {
		return 0, false, invalid(msgInvalidAngle)
	}
	return geom.Radians(deg), true, nil
}

type distanceHooks struct {
	g    *Getter[float64]
	base geom.Point
	line *drawing.Line
}

// NewDistance requests a length measured from base. Typed text is a
// non-negative number or a vector "x,y" whose length is taken.
func NewDistance(host Host, opts Options[float64], base geom.Point) *Getter[float64] {
	h := &distanceHooks{base: base}
	h.g = newGetter(host, opts, Acceptor[float64](h))
	return h.g
}

func (h *distanceHooks) Init() (Result[float64], bool) {
	h.line = drawing.NewLine(h.base, h.base)
	h.g.SetJig(h.line)
	return Result[float64]{}, true
}

func (h *distanceHooks) CoordsChanged(pt geom.Point) {
	h.g.UpdateJig(func() { h.line.P2 = pt })
	h.g.opts.jig(h.base.DistanceTo(pt))
}

func (h *distanceHooks) AcceptCoordsInput(pt geom.Point) (float64, bool, error) {
	return h.base.DistanceTo(pt), true, nil
}

func (h *distanceHooks) AcceptTextInput(text string) (float64, bool, error) {
	if strings.Contains(text, ",") {
		v, err := geom.ParseVector(text)
		if err != nil {
			return 0, false, invalid(msgInvalidInput)
		}
		return v.Length(), true, nil
	}
	d, err := geom.ParseFloat(text)
	if err != nil {
		return 0, false, invalid(msgInvalidInput)
	}
	if d < 0 {
		return 0, false, invalid(msgNegativeLength)
	}
	return d, true, nil
}
