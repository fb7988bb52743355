package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormcad/internal/commands"
	"github.com/dshills/stormcad/internal/config"
	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/event"
	"github.com/dshills/stormcad/internal/event/topic"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/logging"
	"github.com/dshills/stormcad/internal/plugin/lua"
	"github.com/dshills/stormcad/internal/store"
	"github.com/dshills/stormcad/internal/view"
)

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Settings
	settings, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 2. Logger
	if err := app.initLogger(settings); err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	// 3. Event bus
	app.bus = event.NewBus(event.WithPanicHandler(func(t topic.Topic, _ any, recovered any) {
		app.log.Error("subscriber panic on %s: %v", t, recovered)
	}))

	// 4. Commands: built-ins, then scripts
	app.registry = editor.NewRegistry()
	app.scripts = lua.NewEngine(app.registry, app.log)
	if err := commands.Register(app.registry, app.scripts); err != nil {
		return &InitError{Component: "commands", Err: err}
	}
	app.loadScripts()

	// 5. Command history
	if app.opts.HistoryPath != "" {
		app.history, err = store.Open(app.opts.HistoryPath)
		if err != nil {
			return &InitError{Component: "history", Err: err}
		}
	}

	// 6. Screen
	if err := app.initScreen(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}

	// 7. Editor and view
	w, h := app.screen.Size()
	app.viewport = view.NewViewport(w, h)
	app.dialog = view.NewFileDialog(app.screen)
	app.applyTheme(settings)

	edOpts := []editor.Option{
		editor.WithSettings(settings),
		editor.WithLogger(app.log),
		editor.WithBus(app.bus),
		editor.WithViewport(app.viewport),
		editor.WithFileDialog(app.dialog),
	}
	if app.history != nil {
		edOpts = append(edOpts, editor.WithHistory(app.history))
	}
	app.editor = editor.New(app.registry, edOpts...)
	app.view = view.New(app.screen, app.editor, app.viewport, app.log)
	app.cmdline = NewCommandLine(app.editor)
	app.setShortcuts(settings.Keys)

	// 8. Subscriptions and config watcher
	if err := app.subscribe(); err != nil {
		return &InitError{Component: "subscriptions", Err: err}
	}
	if app.opts.ConfigPath != "" {
		app.watcher, err = config.WatchFile(app.opts.ConfigPath, 0, app.onConfigReload)
		if err != nil {
			// Hot reload is optional.
			app.log.Warn("watching %s: %v", app.opts.ConfigPath, err)
		}
	}

	app.cmdline.Reset()
	app.log.WithField("commands", app.registry.Count()).Info("started")
	return nil
}

func (app *Application) initLogger(settings *config.Settings) error {
	var out io.Writer = io.Discard
	if app.opts.LogPath != "" {
		f, err := os.OpenFile(app.opts.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	level := settings.Logging.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	lvl, ok := logging.LookupLevel(level)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}

	cfg := logging.DefaultConfig()
	cfg.Level = lvl
	cfg.Output = out
	app.log = logging.New(cfg).WithComponent("app")
	return nil
}

func (app *Application) initScreen() error {
	screen := app.opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return err
		}
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	app.screen = screen
	return nil
}

// loadScripts loads every *.lua file in the scripts directory in name
// order. A failing script is logged and skipped.
func (app *Application) loadScripts() {
	if app.opts.ScriptsDir == "" {
		return
	}
	files, err := filepath.Glob(filepath.Join(app.opts.ScriptsDir, "*.lua"))
	if err != nil {
		app.log.Warn("listing scripts: %v", err)
		return
	}
	sort.Strings(files)
	for _, f := range files {
		names, err := app.scripts.LoadFile(f)
		if err != nil {
			app.log.WithField("script", f).Error("load failed: %v", err)
			continue
		}
		app.log.WithField("script", f).Info("loaded %d commands", len(names))
	}
}

// setShortcuts replaces the key bindings. Invalid keys or unknown commands
// are logged and skipped.
func (app *Application) setShortcuts(keys map[string]string) {
	bound := make(map[string]string, len(keys))
	for spec, name := range keys {
		ev, err := key.Parse(spec)
		if err != nil {
			app.log.Warn("shortcut %q: %v", spec, err)
			continue
		}
		if !app.registry.Has(name) {
			app.log.Warn("shortcut %q: unknown command %q", spec, name)
			continue
		}
		bound[ev.String()] = name
	}

	app.mu.Lock()
	app.shortcuts = bound
	app.mu.Unlock()
}

func (app *Application) applyTheme(s *config.Settings) {
	fg := config.Color(s.Theme.Foreground)
	bg := config.Color(s.Theme.Background)
	app.dialog.SetStyle(tcell.StyleDefault.
		Foreground(view.TerminalColor(fg)).
		Background(view.TerminalColor(bg)))
}
