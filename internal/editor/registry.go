package editor

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Command is a long-running editing operation. Run executes on its own
// goroutine and requests input through the editor's Get methods.
type Command interface {
	Run(ctx context.Context, ed *Editor, args []string) error
}

// CommandFunc adapts a function to Command.
type CommandFunc func(ctx context.Context, ed *Editor, args []string) error

// Run calls f.
func (f CommandFunc) Run(ctx context.Context, ed *Editor, args []string) error {
	return f(ctx, ed, args)
}

// Registry maps command names to commands. Names are case-insensitive.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]entry
}

type entry struct {
	name string
	cmd  Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]entry)}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds cmd under name, replacing any previous registration.
func (r *Registry) Register(name string, cmd Command) error {
	key := normalize(name)
	if key == "" || cmd == nil {
		return ErrInvalidCommand
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[key] = entry{name: strings.TrimSpace(name), cmd: cmd}
	return nil
}

// RegisterFunc registers a function as a command.
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context, ed *Editor, args []string) error) error {
	if fn == nil {
		return ErrInvalidCommand
	}
	return r.Register(name, CommandFunc(fn))
}

// Unregister removes a command.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.commands, normalize(name))
}

// Lookup returns the command registered under name and its canonical name.
func (r *Registry) Lookup(name string) (Command, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.commands[normalize(name)]
	return e.cmd, e.name, ok
}

// Has returns true if a command is registered under name.
func (r *Registry) Has(name string) bool {
	_, _, ok := r.Lookup(name)
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for _, e := range r.commands {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
