package engine

import (
	"hash"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// ExecutionContext is the confinement boundary within which cached
// engine handles and the secure random handle are reused without
// synchronization. At most one logical operation may touch a context at
// any instant; the ContextPool enforces this by leasing each context
// exclusively. Engines are created lazily on first acquisition and live
// until Close discards the whole cache.
type ExecutionContext struct {
	reseedInterval int

	digests    map[algorithms.Hash]hash.Hash
	macs       map[algorithms.Mac]*MacEngine
	ciphers    map[algorithms.Transformation]*CipherEngine
	signatures map[algorithms.Signature]*SignatureEngine
	rng        *SecureRandom

	closed bool
}

// NewExecutionContext creates an empty execution context whose random
// handle, once created, reseeds at the given interval.
func NewExecutionContext(reseedInterval int) (*ExecutionContext, error) {
	if reseedInterval <= 0 {
		return nil, cryptoerr.NewArgument("reseed interval must be positive, got %d", reseedInterval)
	}
	return &ExecutionContext{
		reseedInterval: reseedInterval,
		digests:        make(map[algorithms.Hash]hash.Hash),
		macs:           make(map[algorithms.Mac]*MacEngine),
		ciphers:        make(map[algorithms.Transformation]*CipherEngine),
		signatures:     make(map[algorithms.Signature]*SignatureEngine),
	}, nil
}

// Digest acquires the cached digest engine for the descriptor, creating
// it on first use. The engine is returned unchanged; callers reset it
// before feeding a new message.
func (c *ExecutionContext) Digest(algorithm algorithms.Hash) (hash.Hash, error) {
	if c.closed {
		return nil, errContextClosed()
	}
	if engine, ok := c.digests[algorithm]; ok {
		return engine, nil
	}
	engine, err := newDigestEngine(algorithm)
	if err != nil {
		return nil, err
	}
	c.digests[algorithm] = engine
	return engine, nil
}

// Mac acquires the cached MAC engine for the descriptor.
func (c *ExecutionContext) Mac(algorithm algorithms.Mac) (*MacEngine, error) {
	if c.closed {
		return nil, errContextClosed()
	}
	if engine, ok := c.macs[algorithm]; ok {
		return engine, nil
	}
	engine, err := newMacEngine(algorithm)
	if err != nil {
		return nil, err
	}
	c.macs[algorithm] = engine
	return engine, nil
}

// Cipher acquires the cached cipher engine for the transformation.
func (c *ExecutionContext) Cipher(transformation algorithms.Transformation) (*CipherEngine, error) {
	if c.closed {
		return nil, errContextClosed()
	}
	if engine, ok := c.ciphers[transformation]; ok {
		return engine, nil
	}
	engine, err := newCipherEngine(transformation)
	if err != nil {
		return nil, err
	}
	c.ciphers[transformation] = engine
	return engine, nil
}

// Signature acquires the cached signature engine for the descriptor.
func (c *ExecutionContext) Signature(algorithm algorithms.Signature) (*SignatureEngine, error) {
	if c.closed {
		return nil, errContextClosed()
	}
	if engine, ok := c.signatures[algorithm]; ok {
		return engine, nil
	}
	engine, err := newSignatureEngine(algorithm)
	if err != nil {
		return nil, err
	}
	c.signatures[algorithm] = engine
	return engine, nil
}

// Random acquires the context's secure random handle, creating and
// seeding it on first use.
func (c *ExecutionContext) Random() (*SecureRandom, error) {
	if c.closed {
		return nil, errContextClosed()
	}
	if c.rng != nil {
		return c.rng, nil
	}
	rng, err := NewSecureRandom(c.reseedInterval)
	if err != nil {
		return nil, err
	}
	c.rng = rng
	return rng, nil
}

// Close discards every cached engine handle across all primitive
// families and the random handle. Callers must ensure no operation is
// in flight on the context.
func (c *ExecutionContext) Close() {
	c.digests = nil
	c.macs = nil
	c.ciphers = nil
	c.signatures = nil
	c.rng = nil
	c.closed = true
}

func errContextClosed() error {
	return cryptoerr.NewCryptography("execution context is closed")
}
