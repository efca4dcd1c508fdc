package app

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// Future is the awaitable, cancellable handle returned by the façade's
// asynchronous entry points. Cancellation is best effort: it only takes
// effect while the work has not yet started; an operation already
// executing inside a native call is not interruptible.
type Future[T any] struct {
	id        uuid.UUID
	done      chan struct{}
	cancelled *atomic.Bool
	started   *atomic.Bool

	result T
	err    error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{
		id:        uuid.New(),
		done:      make(chan struct{}),
		cancelled: atomic.NewBool(false),
		started:   atomic.NewBool(false),
	}
}

// ID returns the unique identifier of the submitted operation.
func (f *Future[T]) ID() uuid.UUID { return f.id }

// Await blocks until the operation completes or the context is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, cryptoerr.WrapCryptography(ctx.Err(), "await aborted")
	}
}

// Cancel requests cancellation and reports whether the operation was
// still pending and will not run.
func (f *Future[T]) Cancel() bool {
	if f.started.Load() {
		return false
	}
	return f.cancelled.CompareAndSwap(false, true)
}

func (f *Future[T]) complete(result T, err error) {
	f.result = result
	f.err = err
	close(f.done)
}
