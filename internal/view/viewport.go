package view

import (
	"math"
	"sync"

	"github.com/dshills/stormcad/internal/geom"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// Zoom limits, in world units per cell.
const (
	MinScale = 1e-6
	MaxScale = 1e6
)

// Viewport maps screen cells to world coordinates. World y grows upward,
// screen y downward. A cell's world location is its center.
type Viewport struct {
	mu     sync.RWMutex
	center geom.Point
	scale  float64
	width  int
	height int
}

// NewViewport creates a viewport of the given size in cells, centered on
// the world origin at one world unit per cell.
func NewViewport(width, height int) *Viewport {
	return &Viewport{scale: 1, width: width, height: height}
}

// Resize changes the size in cells.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = width, height
}

// Size returns the size in cells.
func (v *Viewport) Size() (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Center returns the world point at the middle of the viewport.
func (v *Viewport) Center() geom.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.center
}

// PixelSize returns the world width of one cell.
func (v *Viewport) PixelSize() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scale
}

// ScreenToWorld returns the world location of the center of cell (x, y).
func (v *Viewport) ScreenToWorld(x, y int) geom.Point {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.toWorld(x, y)
}

func (v *Viewport) toWorld(x, y int) geom.Point {
	return geom.Pt(
		v.center.X+(float64(x)+0.5-float64(v.width)/2)*v.scale,
		v.center.Y-(float64(y)+0.5-float64(v.height)/2)*v.scale*CellAspect,
	)
}

// WorldToScreen returns the cell containing p. The cell may be outside
// the viewport.
func (v *Viewport) WorldToScreen(p geom.Point) (int, int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	x := (p.X-v.center.X)/v.scale + float64(v.width)/2
	y := (v.center.Y-p.Y)/(v.scale*CellAspect) + float64(v.height)/2
	return int(math.Floor(x)), int(math.Floor(y))
}

// Pan moves the view by dx, dy cells.
func (v *Viewport) Pan(dx, dy int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center.X += float64(dx) * v.scale
	v.center.Y -= float64(dy) * v.scale * CellAspect
}

// Zoom multiplies the scale by factor keeping the world point under cell
// (x, y) fixed. A factor below 1 zooms in.
func (v *Viewport) Zoom(factor float64, x, y int) {
	if factor <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.toWorld(x, y)
	v.scale = min(max(v.scale*factor, MinScale), MaxScale)
	v.center.X = p.X - (float64(x)+0.5-float64(v.width)/2)*v.scale
	v.center.Y = p.Y + (float64(y)+0.5-float64(v.height)/2)*v.scale*CellAspect
}

// ZoomExtents fits e into the viewport with a small margin.
func (v *Viewport) ZoomExtents(e geom.Extents) {
	if e.IsEmpty() {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.width <= 0 || v.height <= 0 {
		return
	}

	v.center = e.Center()
	s := max(e.Width()/float64(v.width), e.Height()/(float64(v.height)*CellAspect)) * 1.1
	v.scale = min(max(s, MinScale), MaxScale)
}
