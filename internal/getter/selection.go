package getter

import (
	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/selection"
)

// windowPicker collects the two corners of a selection window and keeps
// its fill and outline previews in step with the cursor.
type windowPicker struct {
	theme   config.Theme
	add     func(drawing.Drawable)
	remove  func(drawing.Drawable)
	update  func(drawing.Drawable, func())
	started bool
	p1      geom.Point
	fill    *drawing.Hatch
	outline *drawing.Polyline
}

func newWindowPicker[T any](g *Getter[T]) *windowPicker {
	tr := g.host.Document().Transients
	return &windowPicker{
		theme:  g.settings.Theme,
		add:    g.AddTransient,
		remove: g.RemoveTransient,
		update: func(d drawing.Drawable, fn func()) { tr.Update(d, fn) },
	}
}

// first fixes the first corner and shows an empty window at it.
func (w *windowPicker) first(p1 geom.Point) {
	w.started = true
	w.p1 = p1
	w.fill = drawing.NewHatch()
	w.fill.SetRectangle(p1, p1)
	w.outline = drawing.NewRectangle(p1, p1)
	w.restyle(selection.Window{P1: p1, P2: p1})
	w.add(w.fill)
	w.add(w.outline)
}

// track resizes the previews to the live second corner.
func (w *windowPicker) track(p2 geom.Point) selection.Window {
	win := selection.Window{P1: w.p1, P2: p2}
	w.update(w.fill, func() {
		w.fill.SetRectangle(w.p1, p2)
		w.restyleFill(win)
	})
	w.update(w.outline, func() {
		w.outline.SetRectangle(w.p1, p2)
		w.restyleOutline(win)
	})
	return win
}

func (w *windowPicker) restyle(win selection.Window) {
	w.restyleFill(win)
	w.restyleOutline(win)
}

func (w *windowPicker) restyleFill(win selection.Window) {
	fill, _ := w.theme.WindowColors(win.WindowSelection())
	w.fill.SetStyle(drawing.Style{Color: fill, Fill: true})
}

func (w *windowPicker) restyleOutline(win selection.Window) {
	_, outline := w.theme.WindowColors(win.WindowSelection())
	w.outline.SetStyle(drawing.Style{Color: outline})
}

// clear removes the previews and forgets the first corner.
func (w *windowPicker) clear() {
	if !w.started {
		return
	}
	w.remove(w.fill)
	w.remove(w.outline)
	w.started = false
}

// corner parses typed corner text, relative to the first corner once set.
func (w *windowPicker) corner(text string) (geom.Point, error) {
	var base *geom.Point
	if w.started {
		base = &w.p1
	}
	pt, err := geom.ParsePoint(text, base)
	if err != nil {
		return geom.Point{}, invalid(msgInvalidPoint)
	}
	return pt, nil
}

type selectionHooks struct {
	g   *Getter[*selection.Set]
	win *windowPicker
}

// NewSelection requests a set of drawables. A non-empty current selection
// is returned immediately. Otherwise a click on a drawable picks it, and a
// click on empty space starts a window: left to right selects enclosed
// items, right to left selects crossing items.
func NewSelection(host Host, opts Options[*selection.Set]) *Getter[*selection.Set] {
	h := &selectionHooks{}
	h.g = newGetter(host, opts, Acceptor[*selection.Set](h))
	h.win = newWindowPicker(h.g)
	return h.g
}

func (h *selectionHooks) Init() (Result[*selection.Set], bool) {
	if cur := h.g.host.Selection(); cur != nil && cur.Len() > 0 {
		return OK(cur.Clone()), false
	}
	return Result[*selection.Set]{}, true
}

func (h *selectionHooks) CoordsChanged(pt geom.Point) {
	if !h.win.started {
		return
	}
	win := h.win.track(pt)
	if h.g.opts.Jig != nil {
		h.g.opts.Jig(win.Select(h.g.host.Document().Model.Items()))
	}
}

func (h *selectionHooks) AcceptCoordsInput(pt geom.Point) (*selection.Set, bool, error) {
	if h.win.started {
		win := selection.Window{P1: h.win.p1, P2: pt}
		return win.Select(h.g.host.Document().Model.Items()), true, nil
	}

	pick := h.g.host.PickBoxSize()
	for _, d := range h.g.host.Document().Model.Items() {
		if d.Contains(pt, pick) {
			return selection.NewSet(d), true, nil
		}
	}

	h.win.first(pt)
	return nil, false, nil
}

func (h *selectionHooks) AcceptTextInput(text string) (*selection.Set, bool, error) {
	pt, err := h.win.corner(text)
	if err != nil {
		return nil, false, err
	}
	if !h.win.started {
		h.win.first(pt)
		return nil, false, nil
	}
	return h.AcceptCoordsInput(pt)
}

func (h *selectionHooks) CancelInput() {
	h.win.clear()
}

type cpSelectionHooks struct {
	g   *Getter[*selection.CPSet]
	win *windowPicker
}

// NewCPSelection requests control points. A click within the pick box of
// a stretch point picks that point; otherwise a window selects every
// stretch point whose base point it contains, whatever its direction.
func NewCPSelection(host Host, opts Options[*selection.CPSet]) *Getter[*selection.CPSet] {
	h := &cpSelectionHooks{}
	h.g = newGetter(host, opts, Acceptor[*selection.CPSet](h))
	h.win = newWindowPicker(h.g)
	return h.g
}

func (h *cpSelectionHooks) CoordsChanged(pt geom.Point) {
	if !h.win.started {
		return
	}
	win := h.win.track(pt)
	if h.g.opts.Jig != nil {
		h.g.opts.Jig(win.SelectControlPoints(h.g.host.Document().Model.Items()))
	}
}

func (h *cpSelectionHooks) AcceptCoordsInput(pt geom.Point) (*selection.CPSet, bool, error) {
	items := h.g.host.Document().Model.Items()
	if h.win.started {
		win := selection.Window{P1: h.win.p1, P2: pt}
		return win.SelectControlPoints(items), true, nil
	}

	half := h.g.host.PickBoxSize() / 2
	for _, d := range items {
		for _, cp := range d.StretchPoints() {
			if cp.BasePoint.DistanceTo(pt) <= half {
				s := selection.NewCPSet()
				s.Add(d, cp.Index)
				return s, true, nil
			}
		}
	}

	h.win.first(pt)
	return nil, false, nil
}

func (h *cpSelectionHooks) AcceptTextInput(text string) (*selection.CPSet, bool, error) {
	pt, err := h.win.corner(text)
	if err != nil {
		return nil, false, err
	}
	if !h.win.started {
		h.win.first(pt)
		return nil, false, nil
	}
	return h.AcceptCoordsInput(pt)
}

func (h *cpSelectionHooks) CancelInput() {
	h.win.clear()
}
