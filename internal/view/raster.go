package view

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/geom"
)

// canvas rasterizes world geometry into the drawing area of a screen.
type canvas struct {
	screen tcell.Screen
	vp     *Viewport
	bg     tcell.Color
	width  int
	height int
}

func newCanvas(s tcell.Screen, vp *Viewport, bg tcell.Color) *canvas {
	w, h := vp.Size()
	return &canvas{screen: s, vp: vp, bg: bg, width: w, height: h}
}

// TerminalColor converts a colorful color to a 24-bit terminal color.
func TerminalColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (c *canvas) set(x, y int, r rune, fg tcell.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(fg).Background(c.bg))
}

func (c *canvas) fill(x, y int, fg tcell.Color) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(fg))
}

// drawable renders d in color.
func (c *canvas) drawable(d drawing.Drawable, color tcell.Color) {
	switch v := d.(type) {
	case *drawing.Line:
		c.segment(v.P1, v.P2, color)
	case *drawing.Polyline:
		c.path(v.Points, v.Closed, color)
	case *drawing.Circle:
		c.circle(v.Center, v.Radius, color)
	case *drawing.Hatch:
		if v.Style().Fill {
			c.polygon(v.Points, color)
		} else {
			c.path(v.Points, true, color)
		}
	default:
		e := d.Extents()
		if !e.IsEmpty() {
			c.path([]geom.Point{e.Min, geom.Pt(e.Max.X, e.Min.Y), e.Max, geom.Pt(e.Min.X, e.Max.Y)}, true, color)
		}
	}
}

func (c *canvas) path(pts []geom.Point, closed bool, color tcell.Color) {
	for i := 1; i < len(pts); i++ {
		c.segment(pts[i-1], pts[i], color)
	}
	if closed && len(pts) > 2 {
		c.segment(pts[len(pts)-1], pts[0], color)
	}
}

// segment draws a Bresenham line with a glyph chosen by its slope.
func (c *canvas) segment(a, b geom.Point, color tcell.Color) {
	x0, y0 := c.vp.WorldToScreen(a)
	x1, y1 := c.vp.WorldToScreen(b)
	if !c.visible(x0, y0, x1, y1) {
		return
	}

	glyph := lineGlyph(x1-x0, y1-y0)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	for {
		c.set(x0, y0, glyph, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// visible rejects segments entirely on one side of the drawing area.
func (c *canvas) visible(x0, y0, x1, y1 int) bool {
	switch {
	case x0 < 0 && x1 < 0, y0 < 0 && y1 < 0:
		return false
	case x0 >= c.width && x1 >= c.width, y0 >= c.height && y1 >= c.height:
		return false
	}
	return true
}

func (c *canvas) circle(center geom.Point, radius float64, color tcell.Color) {
	if radius <= 0 {
		return
	}
	// One sample per cell of circumference, at least a 16-gon.
	n := max(16, int(2*math.Pi*radius/c.vp.PixelSize()))
	n = min(n, 4096)
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = center.Add(geom.Polar(radius, 2*math.Pi*float64(i)/float64(n)))
	}
	for i := range pts {
		x, y := c.vp.WorldToScreen(pts[i])
		c.set(x, y, '•', color)
	}
}

// polygon fills every cell whose center is inside pts.
func (c *canvas) polygon(pts []geom.Point, color tcell.Color) {
	if len(pts) < 3 {
		c.path(pts, false, color)
		return
	}
	var e geom.Extents
	for _, p := range pts {
		e.Add(p)
	}
	x0, y1 := c.vp.WorldToScreen(e.Min)
	x1, y0 := c.vp.WorldToScreen(e.Max)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.width-1), min(y1, c.height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if insidePolygon(c.vp.ScreenToWorld(x, y), pts) {
				c.fill(x, y, color)
			}
		}
	}
	c.path(pts, true, color)
}

// marker draws a single glyph at p.
func (c *canvas) marker(p geom.Point, r rune, color tcell.Color) {
	x, y := c.vp.WorldToScreen(p)
	c.set(x, y, r, color)
}

func insidePolygon(p geom.Point, pts []geom.Point) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// lineGlyph picks a box-drawing rune for a segment direction in cells.
func lineGlyph(dx, dy int) rune {
	switch {
	case dx == 0 && dy == 0:
		return '•'
	case dy == 0:
		return '─'
	case dx == 0:
		return '│'
	}
	// Cells are twice as tall as wide.
	slope := float64(dy) * CellAspect / float64(dx)
	switch {
	case math.Abs(slope) < 0.5:
		return '─'
	case math.Abs(slope) > 4:
		return '│'
	case slope > 0:
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
