package app

import (
	"errors"

	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/input/key"
	"github.com/dshills/stormcad/internal/input/mouse"
)

// snapCommand is the one shortcut honoured while another command runs.
const snapCommand = "snap"

// OnViewMouseMove implements view.Handler.
func (app *Application) OnViewMouseMove(ev mouse.Event) {
	app.editor.OnViewMouseMove(ev)
}

// OnViewMouseClick implements view.Handler. A right click on an idle
// editor repeats the last command.
func (app *Application) OnViewMouseClick(ev mouse.Event) {
	if app.editor.CommandInProgress() {
		app.editor.OnViewMouseClick(ev)
		return
	}
	if ev.Button == mouse.ButtonRight {
		app.cmdline.KeyDown(app.ctx, key.NewSpecialEvent(key.KeyEnter, key.ModNone))
	}
}

// OnViewKeyDown implements view.Handler. Keys go to the running command,
// otherwise to shortcuts and then the command line.
func (app *Application) OnViewKeyDown(ev key.Event) {
	app.consumed = false
	app.pressToEditor = false
	name, bound := app.shortcut(ev)

	if app.editor.CommandInProgress() {
		app.pressToEditor = true
		if bound && name == snapCommand && !ev.IsChar() {
			on := app.editor.ToggleSnap()
			app.log.WithField("enabled", on).Debug("snap toggled")
			return
		}
		app.editor.OnViewKeyDown(ev)
		return
	}

	if bound && (!ev.IsChar() || app.cmdline.Text() == "") {
		app.consumed = true
		app.runShortcut(name)
		return
	}
	app.consumed = app.cmdline.KeyDown(app.ctx, ev)
}

// OnViewKeyPress implements view.Handler.
func (app *Application) OnViewKeyPress(ev key.Event) {
	if app.consumed {
		app.consumed = false
		return
	}
	// A key-down that finished the command still owns its key press.
	if app.pressToEditor || app.editor.CommandInProgress() {
		app.editor.OnViewKeyPress(ev)
		return
	}
	app.cmdline.KeyPress(ev)
}

func (app *Application) runShortcut(name string) {
	err := app.editor.RunCommand(app.ctx, name, nil)
	switch {
	case err == nil:
	case errors.Is(err, editor.ErrCommandInProgress):
		app.log.Debug("shortcut %s ignored: %v", name, err)
	default:
		app.cmdline.Reset()
	}
}
