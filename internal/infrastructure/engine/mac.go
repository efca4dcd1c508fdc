package engine

import (
	"crypto/hmac"
	"hash"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// MacEngine is the stateful engine handle for one MAC descriptor. It is
// cached per execution context; Init re-keys it for each operation.
type MacEngine struct {
	algorithm algorithms.Mac
	mac       hash.Hash
}

func newMacEngine(algorithm algorithms.Mac) (*MacEngine, error) {
	if !algorithm.Real() {
		return nil, cryptoerr.NewCryptography("no engine for MAC algorithm %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
	// Fail fast when the underlying digest has no engine.
	if _, err := newDigestEngine(algorithm.Underlying()); err != nil {
		return nil, err
	}
	return &MacEngine{algorithm: algorithm}, nil
}

// Algorithm returns the MAC descriptor the engine was built for.
func (e *MacEngine) Algorithm() algorithms.Mac { return e.algorithm }

// Init keys the HMAC construction for one operation, discarding any
// state from a previous one.
func (e *MacEngine) Init(key []byte) error {
	if len(key) == 0 {
		return cryptoerr.NewCryptography("empty key for MAC algorithm %q", e.algorithm.CanonicalName())
	}
	underlying := e.algorithm.Underlying()
	e.mac = hmac.New(func() hash.Hash {
		h, _ := newDigestEngine(underlying)
		return h
	}, key)
	return nil
}

// Write feeds input bytes into the keyed engine.
func (e *MacEngine) Write(data []byte) (int, error) {
	if e.mac == nil {
		return 0, cryptoerr.NewCryptography("MAC engine used before Init")
	}
	return e.mac.Write(data)
}

// Sum finalizes the operation and returns the raw authentication code.
func (e *MacEngine) Sum() ([]byte, error) {
	if e.mac == nil {
		return nil, cryptoerr.NewCryptography("MAC engine used before Init")
	}
	return e.mac.Sum(nil), nil
}
