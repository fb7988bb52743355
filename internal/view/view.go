// Package view is the terminal front end of stormcad. It renders the
// document model, transient previews and the active snap marker with
// tcell, maps screen cells to world coordinates and turns terminal input
// into the key and mouse events consumed by the editor.
package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/event/topic"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/input/mouse"
	"github.com/dshills/stormcad/internal/logging"
)

// Rows reserved below the drawing area for the prompt and status lines.
const statusRows = 2

// Zoom step for the wheel and PgUp/PgDn.
const zoomStep = 1.25

// Handler receives view input. Locations are in world coordinates.
type Handler interface {
	OnViewMouseMove(ev mouse.Event)
	OnViewMouseClick(ev mouse.Event)
	OnViewKeyDown(ev key.Event)
	OnViewKeyPress(ev key.Event)
}

// redrawEvent asks the event loop to repaint.
type redrawEvent struct{ tcell.EventTime }

// View draws an editor's document on a terminal screen.
type View struct {
	screen  tcell.Screen
	ed      *editor.Editor
	vp      *Viewport
	tracker *mouse.Tracker
	log     *logging.Logger
	subs    *event.Subscriber

	mu      sync.Mutex
	lastErr error
	cursor  mouse.Position
	hasCur  bool
}

// New creates a view on an initialized screen. vp should be the viewport
// the editor was built with so pick and snap sizes follow the zoom.
func New(screen tcell.Screen, ed *editor.Editor, vp *Viewport, log *logging.Logger) *View {
	if log == nil {
		log = logging.Nop()
	}
	w, h := screen.Size()
	vp.Resize(w, max(h-statusRows, 1))
	v := &View{
		screen:  screen,
		ed:      ed,
		vp:      vp,
		tracker: mouse.NewTracker(mouse.DefaultConfig()),
		log:     log.WithComponent("view"),
		subs:    event.NewSubscriber(ed.Bus()),
	}

	// Bus handlers run on the publishing goroutine; repaint from the loop.
	post := func(topic.Topic, any) { v.requestRedraw() }
	_, _ = v.subs.Subscribe(event.TopicRedraw, post)
	_, _ = v.subs.Subscribe(event.TopicPrompt, post)
	_, _ = v.subs.Subscribe(event.TopicCommandFinished, post)
	_, _ = v.subs.Subscribe(event.TopicConfigReloaded, post)
	_, _ = event.SubscribeTyped(ed.Bus(), event.TopicError, func(err error) {
		v.mu.Lock()
		v.lastErr = err
		v.mu.Unlock()
		v.requestRedraw()
	})
	return v
}

// Viewport returns the world mapping of the drawing area.
func (v *View) Viewport() *Viewport { return v.vp }

func (v *View) requestRedraw() {
	ev := &redrawEvent{}
	ev.SetEventNow()
	_ = v.screen.PostEvent(ev)
}

// Close releases bus subscriptions. The screen is owned by the caller.
func (v *View) Close() {
	v.subs.Close()
}

// Run processes terminal events until ctx is cancelled or the user quits
// with Ctrl+Q.
func (v *View) Run(ctx context.Context, h Handler) error {
	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			w, h := ev.Size()
			v.vp.Resize(w, max(h-statusRows, 1))
			v.tracker.Reset()
			v.log.Debug("resized to %dx%d", w, h)
			v.screen.Sync()
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
			v.handleKey(ev, h)
		case *tcell.EventMouse:
			v.handleMouse(ev, h)
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		case *redrawEvent:
		}
		v.Draw()
	}
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlQ ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q' && ev.Modifiers()&tcell.ModCtrl != 0)
}

func (v *View) handleKey(ev *tcell.EventKey, h Handler) {
	w, ht := v.vp.Size()
	switch ev.Key() {
	case tcell.KeyUp:
		v.vp.Pan(0, -1)
		return
	case tcell.KeyDown:
		v.vp.Pan(0, 1)
		return
	case tcell.KeyLeft:
		v.vp.Pan(-2, 0)
		return
	case tcell.KeyRight:
		v.vp.Pan(2, 0)
		return
	case tcell.KeyPgUp:
		v.vp.Zoom(1/zoomStep, w/2, ht/2)
		return
	case tcell.KeyPgDn:
		v.vp.Zoom(zoomStep, w/2, ht/2)
		return
	case tcell.KeyHome:
		v.vp.ZoomExtents(v.modelExtents())
		return
	}

	k, ok := convertKey(ev)
	if !ok {
		return
	}
	v.mu.Lock()
	v.lastErr = nil
	v.mu.Unlock()

	h.OnViewKeyDown(k)
	if k.IsChar() || k.IsBackspace() {
		h.OnViewKeyPress(k)
	}
}

func (v *View) handleMouse(ev *tcell.EventMouse, h Handler) {
	x, y := ev.Position()
	_, ht := v.vp.Size()
	if y >= ht {
		return
	}
	button := convertButton(ev.Buttons())

	if button.IsScroll() {
		f := zoomStep
		if button == mouse.ButtonScrollUp {
			f = 1 / zoomStep
		}
		v.vp.Zoom(f, x, y)
		return
	}

	pos := mouse.Position{X: x, Y: y}
	v.mu.Lock()
	v.cursor, v.hasCur = pos, true
	v.mu.Unlock()

	loc := v.vp.ScreenToWorld(x, y)
	for _, me := range v.tracker.Update(pos, button, convertMod(ev.Modifiers()), ev.When()) {
		me = me.At(loc)
		switch me.Action {
		case mouse.ActionMove, mouse.ActionDrag:
			h.OnViewMouseMove(me)
		case mouse.ActionPress:
			h.OnViewMouseClick(me)
		}
	}
}

func (v *View) modelExtents() (e geom.Extents) {
	for _, d := range v.ed.Document().Model.Items() {
		e.AddExtents(d.Extents())
	}
	return e
}

// Draw repaints the whole screen.
func (v *View) Draw() {
	s := v.ed.Settings()
	th := s.Theme
	bg := TerminalColor(config.Color(th.Background))
	fg := TerminalColor(config.Color(th.Foreground))

	v.screen.SetStyle(tcell.StyleDefault.Background(bg).Foreground(fg))
	v.screen.Clear()

	c := newCanvas(v.screen, v.vp, bg)
	doc := v.ed.Document()
	sel := v.ed.Selection()
	selColor := TerminalColor(config.Color(th.Selection))

	for _, d := range doc.Model.Items() {
		color := TerminalColor(d.Style().Color)
		if sel.Contains(d) {
			color = selColor
		}
		c.drawable(d, color)
	}
	jig := TerminalColor(config.Color(th.Jig))
	for _, d := range doc.Transients.Items() {
		color := jig
		if d.Style().Fill {
			color = TerminalColor(d.Style().Color)
		}
		c.drawable(d, color)
	}
	if sp, ok := v.ed.SnapPoint(); ok {
		c.marker(sp.Location, snapGlyph, TerminalColor(config.Color(th.SnapMarker)))
	}

	v.drawStatus(s, fg, bg)
	v.screen.Show()
}

const snapGlyph = '◆'

func (v *View) drawStatus(s *config.Settings, fg, bg tcell.Color) {
	w, h := v.screen.Size()
	if h < statusRows {
		return
	}
	style := tcell.StyleDefault.Foreground(fg).Background(bg)
	inverse := style.Reverse(true)

	v.mu.Lock()
	err := v.lastErr
	cur, hasCur := v.cursor, v.hasCur
	v.mu.Unlock()

	printLine(v.screen, h-2, w, v.ed.CurrentPrompt(), style)

	status := "Ready"
	if name, ok := v.ed.CurrentCommand(); ok {
		status = name
	}
	snapState := "off"
	if s.Snap.Enabled {
		snapState = "on"
	}
	status = fmt.Sprintf(" %s | snap %s", status, snapState)
	if hasCur {
		p := v.vp.ScreenToWorld(cur.X, cur.Y)
		if sp, ok := v.ed.SnapPoint(); ok {
			p = sp.Location
		}
		status += " | " + s.FormatPoint(p)
	}
	if err != nil {
		status = " " + err.Error()
	}
	printLine(v.screen, h-1, w, status, inverse)
}

// printLine writes text at row y, truncated to width cells and padded.
func printLine(s tcell.Screen, y, width int, text string, style tcell.Style) {
	text = runewidth.Truncate(text, width, "…")
	x := 0
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
	for ; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
