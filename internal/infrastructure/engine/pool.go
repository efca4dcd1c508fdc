package engine

import (
	"go.uber.org/atomic"

	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/validators"
)

// ContextPool re-anchors per-thread confinement to goroutine-friendly
// pooling with mutual exclusion: a fixed set of execution contexts is
// leased through a buffered channel, so each context serves at most one
// logical operation at a time.
type ContextPool struct {
	contexts chan *ExecutionContext
	size     int
	closed   *atomic.Bool
}

// NewContextPool creates a pool of size execution contexts sharing the
// same reseed interval.
func NewContextPool(size, reseedInterval int) (*ContextPool, error) {
	if err := validators.RequirePositive("context pool size", size); err != nil {
		return nil, err
	}

	contexts := make(chan *ExecutionContext, size)
	for i := 0; i < size; i++ {
		ec, err := NewExecutionContext(reseedInterval)
		if err != nil {
			return nil, err
		}
		contexts <- ec
	}
	return &ContextPool{contexts: contexts, size: size, closed: atomic.NewBool(false)}, nil
}

// Do leases a context, runs fn confined to it, and returns the context
// to the pool. Blocks while every context is busy.
func (p *ContextPool) Do(fn func(*ExecutionContext) error) error {
	if p.closed.Load() {
		return cryptoerr.NewCryptography("context pool is closed")
	}

	ec := <-p.contexts
	defer func() { p.contexts <- ec }()
	return fn(ec)
}

// Close tears down every pooled context. It must not run concurrently
// with in-flight operations; Close waits until each context has been
// returned before discarding it.
func (p *ContextPool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	for i := 0; i < p.size; i++ {
		ec := <-p.contexts
		ec.Close()
	}
}
