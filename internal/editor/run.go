package editor

import (
	"context"

	"github.com/dshills/stormcad/internal/getter"
)

// run is one execution of a command body.
type run struct {
	name   string
	args   []string
	yield  chan struct{}
	done   chan struct{}
	cancel context.CancelFunc
}

func newRun(name string, args []string, cancel context.CancelFunc) *run {
	return &run{
		name:   name,
		args:   append([]string(nil), args...),
		yield:  make(chan struct{}, 1),
		done:   make(chan struct{}),
		cancel: cancel,
	}
}

// park hands control back to the UI. Called by the command goroutine
// right before it blocks on a getter.
func (r *run) park() {
	select {
	case r.yield <- struct{}{}:
	default:
	}
}

// wait blocks the UI until the command parks or finishes.
func (r *run) wait() {
	select {
	case <-r.yield:
	case <-r.done:
	}
}

type runKey struct{}

func withRun(ctx context.Context, r *run) context.Context {
	return context.WithValue(ctx, runKey{}, r)
}

func runFrom(ctx context.Context) *run {
	r, _ := ctx.Value(runKey{}).(*run)
	return r
}

// pending is the getter a command is blocked on.
type pending struct {
	cancel func(getter.CancelReason)
	done   <-chan struct{}
}

func (p *pending) resolved() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

func (e *Editor) pending() *pending {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

func (e *Editor) setPending(p *pending) {
	e.mu.Lock()
	e.active = p
	e.mu.Unlock()
}

func (e *Editor) clearPending(p *pending) {
	e.mu.Lock()
	if e.active == p {
		e.active = nil
	}
	e.mu.Unlock()
}
