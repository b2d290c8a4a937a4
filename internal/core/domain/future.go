package domain

import (
	"context"
	"sync"
)

// Future is a single-assignment result produced by an asynchronous invocation.
type Future struct {
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

// NewPromise returns an unresolved future and the function that resolves it.
// Only the first call to resolve has an effect.
func NewPromise() (*Future, func(any, error)) {
	f := &Future{done: make(chan struct{})}
	return f, f.resolve
}

func (f *Future) resolve(value any, err error) {
	f.once.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

// Done returns a channel closed once the future is resolved.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the future resolves or ctx is done.
// Cancelling ctx abandons interest in the result; it does not stop the invocation.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Callable is the invocable handle bound to a compiled entry point.
type Callable interface {
	// Invoke starts the entry point with input and returns its future output.
	// Failures inside the entry point are reported through the future.
	Invoke(ctx context.Context, input any) *Future
}
