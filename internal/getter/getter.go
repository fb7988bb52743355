// Package getter implements interactive input acquisition: a command asks
// for a point, angle, distance, text, number, filename or selection and
// the request is satisfied by view events delivered on the event bus.
//
// A Getter subscribes to cursor and key events when it starts, feeds them
// to its hooks, keeps a transient jig drawable up to date while the
// cursor moves and resolves its Future exactly once with a value, a
// keyword or a cancellation. Resolution disposes the getter on the spot:
// its subscriptions are cancelled, so no later event can reach it, and
// every transient it added to the document is removed.
package getter

import (
	"sync"

	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/event/topic"
	"github.com/dshills/stormcad/internal/geom"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/input/mouse"
	"github.com/dshills/stormcad/internal/logging"
	"github.com/dshills/stormcad/internal/selection"
)

// Host is the environment a getter runs in.
type Host interface {
	Bus() *event.Bus
	Document() *drawing.Document
	Settings() *config.Settings
	Selection() *selection.Set
	Logger() *logging.Logger

	// PickBoxSize returns the pick box edge in world units.
	PickBoxSize() float64

	// SetPrompt shows text on the status line.
	SetPrompt(text string)
}

// Acceptor converts raw input into a value. Every getter implements it.
//
// A non-nil error marks the input invalid: the typed text is cleared, the
// error text is shown inline and the getter keeps waiting. Otherwise
// completed reports whether value resolves the request; multi-step getters
// return false to keep collecting input.
type Acceptor[T any] interface {
	AcceptCoordsInput(pt geom.Point) (value T, completed bool, err error)
	AcceptTextInput(text string) (value T, completed bool, err error)
}

// Initializer runs before any subscription is made. Returning async false
// resolves the request immediately with the returned result.
type Initializer[T any] interface {
	Init() (r Result[T], async bool)
}

// CoordsWatcher is notified of every cursor move.
type CoordsWatcher interface {
	CoordsChanged(pt geom.Point)
}

// TextWatcher is notified whenever the typed text changes.
type TextWatcher interface {
	TextChanged(text string)
}

// Canceler cleans up before an Escape cancellation.
type Canceler interface {
	CancelInput()
}

// SpaceHandler lets a getter treat space as an ordinary character.
// Without it, space submits like Enter.
type SpaceHandler interface {
	SpaceAccepts() bool
}

// InputError is an invalid-input message shown inline in the prompt.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func invalid(msg string) error { return &InputError{Message: msg} }

// State is the lifecycle state of a Getter.
type State uint8

const (
	StateCreated State = iota
	StateInitializing
	StateResolvedSynchronously
	StateAwaitingInput
	StateResolved
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateInitializing:
		return "initializing"
	case StateResolvedSynchronously:
		return "resolved-synchronously"
	case StateAwaitingInput:
		return "awaiting-input"
	case StateResolved:
		return "resolved"
	case StateDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// Getter is one active input request producing a T.
type Getter[T any] struct {
	host     Host
	settings *config.Settings
	opts     Options[T]
	hooks    Acceptor[T]
	future   *Future[T]
	sub      *event.Subscriber
	log      *logging.Logger

	mu         sync.Mutex
	state      State
	text       string
	jig        drawing.Drawable
	transients []drawing.Drawable

	disposeOnce sync.Once
}

func newGetter[T any](host Host, opts Options[T], hooks Acceptor[T]) *Getter[T] {
	return &Getter[T]{
		host:     host,
		settings: host.Settings(),
		opts:     opts,
		hooks:    hooks,
		future:   NewFuture[T](),
		sub:      event.NewSubscriber(host.Bus()),
		log:      host.Logger().WithComponent("getter"),
	}
}

// New creates a getter from custom hooks. The concrete constructors in
// this package cover the built-in value types.
func New[T any](host Host, opts Options[T], hooks Acceptor[T]) *Getter[T] {
	return newGetter(host, opts, hooks)
}

// Options returns the request options.
func (g *Getter[T]) Options() Options[T] { return g.opts }

// Future returns the future resolved by this getter.
func (g *Getter[T]) Future() *Future[T] { return g.future }

// Settings returns the settings snapshot taken when the getter was created.
func (g *Getter[T]) Settings() *config.Settings { return g.settings }

// Host returns the host.
func (g *Getter[T]) Host() Host { return g.host }

// State returns the lifecycle state.
func (g *Getter[T]) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Getter[T]) setState(s State) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()
}

// Text returns the currently typed text.
func (g *Getter[T]) Text() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.text
}

// Start initializes the getter and, unless initialization resolved it,
// subscribes to view events. It must be called once.
func (g *Getter[T]) Start() error {
	g.setState(StateInitializing)

	if init, ok := g.hooks.(Initializer[T]); ok {
		r, async := init.Init()
		if !async {
			g.setState(StateResolvedSynchronously)
			g.resolve(r)
			return nil
		}
	}

	subs := []struct {
		t topic.Topic
		h event.Handler
	}{
		{event.TopicCursorMove, onMouse(g.onMove)},
		{event.TopicCursorClick, onMouse(g.onClick)},
		{event.TopicKeyDown, onKey(g.onKeyDown)},
		{event.TopicKeyPress, onKey(g.onKeyPress)},
	}
	for _, s := range subs {
		if _, err := g.sub.Subscribe(s.t, s.h); err != nil {
			g.resolve(Cancel[T](ReasonInit))
			return err
		}
	}

	g.setState(StateAwaitingInput)
	g.showPrompt("")
	return nil
}

func onMouse(fn func(mouse.Event)) event.Handler {
	return func(_ topic.Topic, payload any) {
		if ev, ok := payload.(mouse.Event); ok {
			fn(ev)
		}
	}
}

func onKey(fn func(key.Event)) event.Handler {
	return func(_ topic.Topic, payload any) {
		if ev, ok := payload.(key.Event); ok {
			fn(ev)
		}
	}
}

// Cancel resolves the request with Cancel(reason) if it is still pending.
func (g *Getter[T]) Cancel(reason CancelReason) {
	g.resolve(Cancel[T](reason))
}

// resolve sets the future and disposes the getter. Later calls are no-ops.
func (g *Getter[T]) resolve(r Result[T]) {
	if !g.future.Resolve(r) {
		return
	}
	g.log.Debug("%s resolved: %s", g.opts.Message, r)
	if g.State() != StateResolvedSynchronously {
		g.setState(StateResolved)
	}
	g.Dispose()
}

// Dispose cancels every subscription and removes every transient the
// getter added. It runs at most once; resolution calls it, and callers
// should defer it to cover panics in command code.
func (g *Getter[T]) Dispose() {
	g.disposeOnce.Do(func() {
		g.sub.Close()

		g.mu.Lock()
		items := g.transients
		if g.jig != nil {
			items = append(items, g.jig)
		}
		g.transients = nil
		g.jig = nil
		g.state = StateDisposed
		g.mu.Unlock()

		for _, d := range items {
			g.host.Document().Transients.Remove(d)
		}
	})
}

// SetJig replaces the jig drawable shown in the document's transients.
func (g *Getter[T]) SetJig(d drawing.Drawable) {
	g.mu.Lock()
	old := g.jig
	g.jig = d
	g.mu.Unlock()

	tr := g.host.Document().Transients
	if old != nil {
		tr.Remove(old)
	}
	if d != nil {
		d.SetStyle(drawing.Style{Color: config.Color(g.settings.Theme.Jig)})
		tr.Add(d)
	}
}

// Jig returns the current jig drawable, or nil.
func (g *Getter[T]) Jig() drawing.Drawable {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.jig
}

// UpdateJig mutates the jig in place.
func (g *Getter[T]) UpdateJig(fn func()) {
	if j := g.Jig(); j != nil {
		g.host.Document().Transients.Update(j, fn)
	}
}

// AddTransient shows an additional preview item owned by the getter.
func (g *Getter[T]) AddTransient(d drawing.Drawable) {
	g.mu.Lock()
	g.transients = append(g.transients, d)
	g.mu.Unlock()
	g.host.Document().Transients.Add(d)
}

// RemoveTransient removes a preview item added with AddTransient.
func (g *Getter[T]) RemoveTransient(d drawing.Drawable) {
	g.mu.Lock()
	for i, t := range g.transients {
		if t == d {
			g.transients = append(g.transients[:i], g.transients[i+1:]...)
			break
		}
	}
	g.mu.Unlock()
	g.host.Document().Transients.Remove(d)
}

func (g *Getter[T]) showPrompt(state string) {
	g.host.SetPrompt(g.opts.FullPrompt() + state)
}

func (g *Getter[T]) setText(text string) {
	g.mu.Lock()
	g.text = text
	g.mu.Unlock()
}

func (g *Getter[T]) spaceAccepts() bool {
	if h, ok := g.hooks.(SpaceHandler); ok {
		return h.SpaceAccepts()
	}
	return true
}

func (g *Getter[T]) onMove(ev mouse.Event) {
	if w, ok := g.hooks.(CoordsWatcher); ok {
		w.CoordsChanged(ev.Location)
	}
	if g.Text() == "" {
		g.showPrompt(g.settings.FormatPoint(ev.Location))
	}
}

func (g *Getter[T]) onClick(ev mouse.Event) {
	switch ev.Button {
	case mouse.ButtonLeft:
		g.accept(g.hooks.AcceptCoordsInput(ev.Location))
	case mouse.ButtonRight:
		g.submit()
	}
}

func (g *Getter[T]) onKeyDown(ev key.Event) {
	switch {
	case ev.IsEscape():
		if c, ok := g.hooks.(Canceler); ok {
			c.CancelInput()
		}
		g.resolve(Cancel[T](ReasonEscape))
	case ev.IsEnter():
		g.submit()
	case ev.IsSpace() && g.spaceAccepts():
		g.submit()
	}
}

func (g *Getter[T]) onKeyPress(ev key.Event) {
	text := g.Text()
	switch {
	case ev.IsBackspace():
		if text == "" {
			return
		}
		r := []rune(text)
		text = string(r[:len(r)-1])
	case ev.IsSpace() && g.spaceAccepts():
		return
	case ev.IsChar():
		text += string(ev.Rune)
	default:
		return
	}

	g.setText(text)
	if w, ok := g.hooks.(TextWatcher); ok {
		w.TextChanged(text)
	}
	g.showPrompt(text)
}

// submit handles Enter: keyword first, then typed text, then cancel.
func (g *Getter[T]) submit() {
	text := g.Text()
	if kw, ok := g.opts.Keywords.Match(text); ok {
		g.resolve(KeywordResult[T](kw))
		return
	}
	if text != "" {
		g.accept(g.hooks.AcceptTextInput(text))
		return
	}
	g.resolve(Cancel[T](ReasonEnter))
}

func (g *Getter[T]) accept(v T, completed bool, err error) {
	if err != nil {
		g.setText("")
		g.showPrompt("*" + err.Error() + "* ")
		return
	}
	if completed {
		g.resolve(OK(v))
		return
	}
	g.setText("")
	g.showPrompt("")
}
