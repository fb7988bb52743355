// Package editor runs commands and routes view input to the getter a
// command is waiting on.
//
// A command body runs on its own goroutine, but the editor hands control
// back and forth so that only one side runs at a time: RunCommand returns
// once the body has parked on its first getter or finished, and a view
// event that resolves the active getter blocks until the body parks on
// the next one or returns. Commands therefore see the document exactly as
// the UI left it, and the UI never observes a half-applied step.
package editor

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"

	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/drawing"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/event/topic"
	"github.com/dshills/stormcad/internal/getter"
	"github.com/dshills/stormcad/internal/logging"
	"github.com/dshills/stormcad/internal/selection"
	"github.com/dshills/stormcad/internal/snap"
	"github.com/dshills/stormcad/internal/store"
)

// Viewport converts screen distances to world distances.
type Viewport interface {
	// PixelSize returns the world size of one screen cell.
	PixelSize() float64
}

type unitViewport struct{}

func (unitViewport) PixelSize() float64 { return 1 }

// History persists started commands across sessions.
type History interface {
	AddCmd(text string) (int, error)
	LastCmd() (store.Cmd, error)
}

// Option configures an Editor.
type Option func(*Editor)

// WithSettings sets the initial settings.
func WithSettings(s *config.Settings) Option {
	return func(e *Editor) {
		if s != nil {
			e.settings = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithBus shares an existing event bus.
func WithBus(b *event.Bus) Option {
	return func(e *Editor) {
		if b != nil {
			e.bus = b
		}
	}
}

// WithDocument sets the document edited by commands.
func WithDocument(d *drawing.Document) Option {
	return func(e *Editor) {
		if d != nil {
			e.doc = d
		}
	}
}

// WithViewport sets the screen-to-world converter.
func WithViewport(v Viewport) Option {
	return func(e *Editor) {
		if v != nil {
			e.view = v
		}
	}
}

// WithHistory persists started commands.
func WithHistory(h History) Option {
	return func(e *Editor) { e.history = h }
}

// WithFileDialog sets the dialog used by the filename getters.
func WithFileDialog(d getter.FileDialog) Option {
	return func(e *Editor) { e.dialog = d }
}

type invocation struct {
	name string
	args []string
}

func (i invocation) String() string {
	return strings.Join(append([]string{i.name}, i.args...), " ")
}

// Editor is the command orchestrator. It implements getter.Host.
type Editor struct {
	bus      *event.Bus
	doc      *drawing.Document
	sel      *selection.Set
	registry *Registry
	log      *logging.Logger
	view     Viewport
	history  History
	dialog   getter.FileDialog

	mu       sync.Mutex
	settings *config.Settings
	run      *run
	last     *invocation
	active   *pending
	prompt   string
	snaps    *snap.Collection
	// dropPress swallows the key press paired with a key-down that
	// resolved a getter.
	dropPress bool

	closeOnce sync.Once
}

// New creates an editor running commands from registry.
func New(registry *Registry, opts ...Option) *Editor {
	e := &Editor{
		bus:      event.NewBus(),
		doc:      drawing.NewDocument(),
		sel:      selection.NewSet(),
		registry: registry,
		log:      logging.Nop(),
		view:     unitViewport{},
		settings: config.Default(),
		snaps:    snap.NewCollection(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	e.log = e.log.WithComponent("editor")
	e.doc.OnRedraw(func() { e.bus.Publish(event.TopicRedraw, nil) })
	return e
}

// Bus returns the event bus.
func (e *Editor) Bus() *event.Bus { return e.bus }

// Document returns the edited document.
func (e *Editor) Document() *drawing.Document { return e.doc }

// Selection returns the current selection.
func (e *Editor) Selection() *selection.Set { return e.sel }

// Registry returns the command registry.
func (e *Editor) Registry() *Registry { return e.registry }

// Logger returns the editor logger.
func (e *Editor) Logger() *logging.Logger { return e.log }

// FileDialog returns the configured file dialog, or nil.
func (e *Editor) FileDialog() getter.FileDialog { return e.dialog }

// Settings returns the current settings. Callers must not modify them.
func (e *Editor) Settings() *config.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SetSettings replaces the settings. A getter that is already waiting
// keeps the settings it started with.
func (e *Editor) SetSettings(s *config.Settings) {
	if s == nil {
		return
	}
	e.mu.Lock()
	e.settings = s
	e.mu.Unlock()
	e.log.Debug("settings replaced")
}

// PickBoxSize returns the pick box edge in world units.
func (e *Editor) PickBoxSize() float64 {
	return float64(e.Settings().Display.PickBoxSize) * e.view.PixelSize()
}

// SetPrompt implements getter.Host.
func (e *Editor) SetPrompt(text string) { e.Prompt(text) }

// Prompt shows text on the status line.
func (e *Editor) Prompt(text string) {
	e.mu.Lock()
	e.prompt = text
	e.mu.Unlock()
	e.bus.Publish(event.TopicPrompt, text)
}

// CurrentPrompt returns the last prompt shown.
func (e *Editor) CurrentPrompt() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prompt
}

// Error reports err on the error channel.
func (e *Editor) Error(err error) {
	if err == nil {
		return
	}
	e.log.Warn("%v", err)
	e.bus.Publish(event.TopicError, err)
}

// OnPrompt subscribes fn to prompt changes.
func (e *Editor) OnPrompt(fn func(string)) (event.Subscription, error) {
	return event.SubscribeTyped(e.bus, event.TopicPrompt, fn)
}

// OnError subscribes fn to reported errors.
func (e *Editor) OnError(fn func(error)) (event.Subscription, error) {
	return event.SubscribeTyped(e.bus, event.TopicError, fn)
}

// CommandInProgress returns true while a command body is running.
func (e *Editor) CommandInProgress() bool {
	return e.currentRun() != nil
}

// CurrentCommand returns the name of the running command.
func (e *Editor) CurrentCommand() (string, bool) {
	if r := e.currentRun(); r != nil {
		return r.name, true
	}
	return "", false
}

func (e *Editor) currentRun() *run {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.run
}

// RunCommand starts the command registered under name. It returns once
// the command is waiting for input or has finished. Faults raised by the
// command body are reported through Error, never returned.
func (e *Editor) RunCommand(ctx context.Context, name string, args []string) error {
	cmd, canonical, ok := e.registry.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		e.Error(err)
		return err
	}

	e.mu.Lock()
	if e.run != nil {
		e.mu.Unlock()
		return ErrCommandInProgress
	}
	runCtx, cancel := context.WithCancel(ctx)
	r := newRun(canonical, args, cancel)
	e.run = r
	inv := invocation{name: canonical, args: append([]string(nil), args...)}
	e.last = &inv
	e.mu.Unlock()

	e.record(inv)
	e.log.Info("running %s", inv)
	e.bus.Publish(event.TopicCommandStarted, canonical)

	go e.execute(withRun(runCtx, r), r, cmd)
	r.wait()
	return nil
}

// RepeatCommand runs the last started command again with its arguments.
func (e *Editor) RepeatCommand(ctx context.Context) error {
	e.mu.Lock()
	last := e.last
	e.mu.Unlock()

	if last == nil {
		inv, ok := e.lastFromHistory()
		if !ok {
			return ErrNoCommandToRepeat
		}
		last = &inv
	}
	return e.RunCommand(ctx, last.name, last.args)
}

func (e *Editor) record(inv invocation) {
	if e.history == nil {
		return
	}
	if _, err := e.history.AddCmd(inv.String()); err != nil {
		e.log.Warn("recording %s: %v", inv.name, err)
	}
}

func (e *Editor) lastFromHistory() (invocation, bool) {
	if e.history == nil {
		return invocation{}, false
	}
	cmd, err := e.history.LastCmd()
	if err != nil {
		return invocation{}, false
	}
	fields := strings.Fields(cmd.Text)
	if len(fields) == 0 {
		return invocation{}, false
	}
	return invocation{name: fields[0], args: fields[1:]}, true
}

func (e *Editor) execute(ctx context.Context, r *run, cmd Command) {
	var err error
	defer func() {
		if rec := recover(); rec != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)
			e.log.Error("command %s panicked: %v\n%s", r.name, rec, stack[:n])
			err = fmt.Errorf("%w: %v", ErrPanic, rec)
		}
		e.finish(r, err)
	}()

	err = cmd.Run(ctx, e, r.args)
}

func (e *Editor) finish(r *run, err error) {
	e.sel.Clear()
	if err != nil {
		e.Error(&CommandError{Command: r.name, Err: err})
	}

	e.mu.Lock()
	if e.run == r {
		e.run = nil
	}
	e.active = nil
	e.mu.Unlock()

	r.cancel()
	e.log.Debug("finished %s", r.name)
	e.bus.Publish(event.TopicCommandFinished, r.name)
	close(r.done)
}

// Abort cancels the value the running command is waiting for and waits
// for the command to park again or finish.
func (e *Editor) Abort() {
	r := e.currentRun()
	if r == nil {
		return
	}
	p := e.pending()
	if p == nil {
		return
	}
	p.cancel(getter.ReasonAbort)
	r.wait()
}

// Close aborts the running command and closes the history if it can be
// closed.
func (e *Editor) Close() error {
	var err error
	e.closeOnce.Do(func() {
		if r := e.currentRun(); r != nil {
			r.cancel()
			e.Abort()
		}
		if c, ok := e.history.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

// forward publishes a view event and, when it resolved the active getter,
// waits for the command to take its next step. It reports whether the
// getter was resolved.
func (e *Editor) forward(r *run, t topic.Topic, payload any) bool {
	p := e.pending()
	e.bus.Publish(t, payload)
	if p != nil && p.resolved() {
		r.wait()
		return true
	}
	return false
}
