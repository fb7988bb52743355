package lua

import (
	"context"
	"fmt"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/stormcad/internal/editor"
	"github.com/dshills/stormcad/internal/logging"
)

// Engine loads scripts into one Lua state and registers the commands they
// define with an editor registry.
type Engine struct {
	state    *State
	registry *editor.Registry
	log      *logging.Logger

	mu       sync.Mutex
	loading  string
	added    []string
	commands map[string]string
}

// NewEngine creates an engine registering into reg.
func NewEngine(reg *editor.Registry, log *logging.Logger, opts ...StateOption) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	e := &Engine{
		state:    NewState(opts...),
		registry: reg,
		log:      log.WithComponent("lua"),
		commands: make(map[string]string),
	}
	e.installModule()
	return e
}

// LoadFile runs the script at path and returns the names of the commands
// it registered.
func (e *Engine) LoadFile(path string) ([]string, error) {
	return e.load(path, func() error { return e.state.DoFile(path) })
}

// LoadString runs code as a script called name.
func (e *Engine) LoadString(name, code string) ([]string, error) {
	return e.load(name, func() error { return e.state.DoString(code) })
}

func (e *Engine) load(source string, run func() error) ([]string, error) {
	e.mu.Lock()
	e.loading = source
	e.added = nil
	e.mu.Unlock()

	err := run()

	e.mu.Lock()
	added := e.added
	e.loading = ""
	e.added = nil
	e.mu.Unlock()

	if err != nil {
		return added, fmt.Errorf("lua: loading %s: %w", source, err)
	}
	e.log.Info("loaded %s: %d commands", source, len(added))
	return added, nil
}

// Commands returns the names of every script command, sorted.
func (e *Engine) Commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source returns the script that defined a command.
func (e *Engine) Source(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	src, ok := e.commands[name]
	return src, ok
}

// Close releases the Lua state.
func (e *Engine) Close() error {
	return e.state.Close()
}

// define is called from cad.command while a script is loading.
func (e *Engine) define(name string, fn *lua.LFunction) error {
	if err := e.registry.Register(name, e.command(name, fn)); err != nil {
		return err
	}

	e.mu.Lock()
	e.added = append(e.added, name)
	e.commands[name] = e.loading
	e.mu.Unlock()
	return nil
}

// command wraps a Lua function as an editor command. The function is
// called as fn(ed, args) on the command goroutine.
func (e *Engine) command(name string, fn *lua.LFunction) editor.Command {
	return editor.CommandFunc(func(ctx context.Context, ed *editor.Editor, args []string) error {
		e.log.Debug("running script command %s", name)
		return e.state.Run(ctx, func(L *lua.LState) error {
			argt := L.NewTable()
			for _, a := range args {
				argt.Append(lua.LString(a))
			}
			return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, newEditorValue(L, ctx, ed), argt)
		})
	})
}
