package editor

import (
	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/input/mouse"
	"github.com/dshills/stormcad/internal/snap"
)

// OnViewMouseMove forwards a cursor move to the active getter. The
// location is replaced by the nearest snap point when snapping is on.
func (e *Editor) OnViewMouseMove(ev mouse.Event) {
	r := e.currentRun()
	if r == nil {
		return
	}
	ev.Location = e.snapTo(ev.Location)
	e.forward(r, event.TopicCursorMove, ev)
}

// OnViewMouseClick forwards a click to the active getter.
func (e *Editor) OnViewMouseClick(ev mouse.Event) {
	r := e.currentRun()
	if r == nil {
		return
	}
	if sp, ok := e.SnapPoint(); ok {
		ev.Location = sp.Location
	}
	e.forward(r, event.TopicCursorClick, ev)
}

// OnViewKeyDown forwards a key-down. Tab and Shift+Tab cycle through
// snap candidates and are not forwarded.
func (e *Editor) OnViewKeyDown(ev key.Event) {
	e.setDropPress(false)
	r := e.currentRun()
	if r == nil {
		return
	}
	if ev.Key == key.KeyTab {
		if loc, ok := e.cycleSnap(ev.Modifiers.HasShift()); ok {
			e.forward(r, event.TopicCursorMove, mouse.NewMove(loc))
		}
		return
	}
	if e.forward(r, event.TopicKeyDown, ev) {
		e.setDropPress(true)
	}
}

// OnViewKeyPress forwards a character to the active getter. The press
// belonging to a key-down that resolved the previous getter is dropped,
// so a Space that submits a point does not reach the next getter.
func (e *Editor) OnViewKeyPress(ev key.Event) {
	e.mu.Lock()
	drop := e.dropPress
	e.dropPress = false
	e.mu.Unlock()
	if drop {
		return
	}
	r := e.currentRun()
	if r == nil {
		return
	}
	e.forward(r, event.TopicKeyPress, ev)
}

func (e *Editor) setDropPress(v bool) {
	e.mu.Lock()
	e.dropPress = v
	e.mu.Unlock()
}

// SnapPoint returns the snap point the cursor is attracted to.
func (e *Editor) SnapPoint() (drawing.SnapPoint, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snaps.Current()
}

func (e *Editor) snapTo(loc geom.Point) geom.Point {
	s := e.Settings()
	if !s.Snap.Enabled {
		e.resetSnaps(snap.NewCollection())
		return loc
	}

	radius := float64(s.Display.SnapDistance) * e.view.PixelSize()
	found := snap.Find(e.doc.Model.Items(), loc, radius, snapMask(s))
	e.resetSnaps(found)
	if sp, ok := found.Current(); ok {
		return sp.Location
	}
	return loc
}

func (e *Editor) resetSnaps(c *snap.Collection) {
	e.mu.Lock()
	e.snaps = c
	e.mu.Unlock()
}

func (e *Editor) cycleSnap(back bool) (geom.Point, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.snaps.Len() < 2 {
		return geom.Point{}, false
	}
	next := e.snaps.Next
	if back {
		next = e.snaps.Previous
	}
	sp, _ := next()
	return sp.Location, true
}

func snapMask(s *config.Settings) snap.Mask {
	var types []drawing.SnapPointType
	for _, name := range s.Snap.Types {
		if t, ok := snap.ParseType(name); ok {
			types = append(types, t)
		}
	}
	return snap.MaskOf(types...)
}

// ToggleSnap flips object snapping and returns the new state.
func (e *Editor) ToggleSnap() bool {
	e.mu.Lock()
	s := e.settings.Clone()
	s.Snap.Enabled = !s.Snap.Enabled
	e.settings = s
	if !s.Snap.Enabled {
		e.snaps = snap.NewCollection()
	}
	e.mu.Unlock()

	e.log.Info("snap enabled=%t", s.Snap.Enabled)
	return s.Snap.Enabled
}
