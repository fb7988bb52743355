// Package app wires stormcad together: settings, logging, the document
// and editor, built-in and scripted commands, persisted command history
// and the terminal view. It owns the idle command line and the
// application lifecycle.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/logging"
	"github.com/dshills/stormcad/internal/plugin/lua"
	"github.com/dshills/stormcad/internal/store"
	"github.com/dshills/stormcad/internal/view"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file (TOML or YAML). It is watched for
	// changes while the application runs.
	ConfigPath string

	// ScriptsDir holds *.lua command scripts loaded at startup.
	ScriptsDir string

	// HistoryPath is the bbolt command history file. Empty disables
	// persisted history.
	HistoryPath string

	// LogPath is the log file. Empty discards log output; the terminal
	// is never written to.
	LogPath string

	// LogLevel overrides the level from the settings file.
	LogLevel string

	// Screen replaces the terminal screen; used by tests.
	Screen tcell.Screen
}

// Application is the central coordinator for all stormcad components.
type Application struct {
	opts Options

	log     *logging.Logger
	logFile io.Closer

	bus      *event.Bus
	registry *editor.Registry
	editor   *editor.Editor
	scripts  *lua.Engine
	history  *store.Store

	screen   tcell.Screen
	viewport *view.Viewport
	dialog   *view.FileDialog
	view     *view.View
	watcher  *config.Watcher
	subs     *event.Subscriber

	cmdline *CommandLine
	// consumed marks a key-down whose key press must be dropped. View
	// goroutine only.
	consumed bool
	// pressToEditor routes the key press to the editor because its
	// key-down went there. View goroutine only.
	pressToEditor bool

	mu        sync.RWMutex
	shortcuts map[string]string

	ctx      context.Context
	running  atomic.Bool
	shutOnce sync.Once
	shutErr  error
}

// New creates an Application with the given options. On error every
// component started so far is shut down again.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts, ctx: context.Background()}
	if err := app.bootstrap(); err != nil {
		_ = app.shutdown()
		return nil, err
	}
	return app, nil
}

// Run processes terminal input until ctx is cancelled or the user quits,
// then shuts the application down.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.ctx = ctx
	app.log.Info("running")
	err := app.view.Run(ctx, app)
	if err == context.Canceled {
		err = nil
	}

	if serr := app.Shutdown(); err == nil {
		err = serr
	}
	return err
}

// Shutdown stops every component in reverse start order. It is safe to
// call more than once; later calls return the first result.
func (app *Application) Shutdown() error {
	app.shutOnce.Do(func() { app.shutErr = app.shutdown() })
	return app.shutErr
}

func (app *Application) shutdown() error {
	var errs ErrorList

	if app.watcher != nil {
		errs.Add(app.watcher.Close())
	}
	if app.subs != nil {
		app.subs.Close()
	}
	if app.dialog != nil {
		_ = app.dialog.Close()
	}
	if app.view != nil {
		app.view.Close()
	}
	if app.editor != nil {
		// Also closes the history store.
		errs.Add(app.editor.Close())
	} else if app.history != nil {
		errs.Add(app.history.Close())
	}
	if app.scripts != nil {
		errs.Add(app.scripts.Close())
	}
	if app.screen != nil {
		app.screen.Fini()
	}
	if app.log != nil {
		app.log.Info("stopped")
	}
	if app.logFile != nil {
		errs.Add(app.logFile.Close())
	}
	return errs.AsError()
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor { return app.editor }

// Scripts returns the Lua script engine.
func (app *Application) Scripts() *lua.Engine { return app.scripts }

// View returns the terminal view.
func (app *Application) View() *view.View { return app.view }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.log }

// shortcut returns the command bound to ev.
func (app *Application) shortcut(ev key.Event) (string, bool) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	name, ok := app.shortcuts[ev.String()]
	return name, ok
}
