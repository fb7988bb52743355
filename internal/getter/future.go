package getter

import (
	"context"
	"sync"
)

// Future is a single-assignment result shared by the goroutine that waits
// for input and the event handlers that supply it.
type Future[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	result   Result[T]
	resolved bool
}

// NewFuture creates an unresolved future.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolve sets the result. Only the first call has any effect; it reports
// whether this call resolved the future.
func (f *Future[T]) Resolve(r Result[T]) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resolved {
		return false
	}
	f.result = r
	f.resolved = true
	close(f.done)
	return true
}

// Done is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Result returns the result and whether it has been set.
func (f *Future[T]) Result() (Result[T], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.resolved
}

// Wait blocks until the future resolves or ctx is done.
func (f *Future[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-f.done:
		r, _ := f.Result()
		return r, nil
	case <-ctx.Done():
		return Result[T]{}, ctx.Err()
	}
}
