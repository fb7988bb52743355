// Package commands holds the built-in editing commands.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/stormcad/internal/editor"
)

// ScriptLoader loads a script file and returns the commands it defined.
type ScriptLoader interface {
	LoadFile(path string) ([]string, error)
}

// ErrNoScriptEngine is returned by the script command when no loader is set.
var ErrNoScriptEngine = errors.New("commands: no script engine")

// Register adds the built-in commands to reg. scripts may be nil.
func Register(reg *editor.Registry, scripts ScriptLoader) error {
	builtins := []struct {
		name string
		fn   editor.CommandFunc
	}{
		{"line", Line},
		{"circle", Circle},
		{"rectangle", Rectangle},
		{"erase", Erase},
		{"move", Move},
		{"rotate", Rotate},
		{"stretch", Stretch},
		{"text-note", TextNote},
		{"array", Array},
		{"snap", Snap},
		{"script", Script(scripts)},
	}
	for _, b := range builtins {
		if err := reg.Register(b.name, b.fn); err != nil {
			return fmt.Errorf("registering %s: %w", b.name, err)
		}
	}
	return nil
}

// Snap toggles object snapping.
func Snap(_ context.Context, ed *editor.Editor, _ []string) error {
	if ed.ToggleSnap() {
		ed.Prompt("Snap on")
	} else {
		ed.Prompt("Snap off")
	}
	return nil
}
