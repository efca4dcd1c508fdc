package app

import (
	"bytes"
	"context"
	"io"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/domain/values"
	"github.com/servercurio/fabric-sub000/internal/infrastructure/engine"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
	"github.com/servercurio/fabric-sub000/internal/pkg/validators"
)

// macService implements the MacProvider interface on top of the
// execution-context pool.
type macService struct {
	pool   *engine.ContextPool
	logger logger.Logger
}

// NewMacService creates a new macService instance.
func NewMacService(pool *engine.ContextPool, logger logger.Logger) (providers.MacProvider, error) {
	if pool == nil {
		return nil, cryptoerr.NewArgument("pool must not be nil")
	}
	return &macService{pool: pool, logger: logger}, nil
}

// Authenticate computes the MAC of the given bytes under the key.
func (s *macService) Authenticate(ctx context.Context, algorithm algorithms.Mac, key, data []byte) (*values.FrozenDigest, error) {
	if err := checkMacArgs(ctx, algorithm, key); err != nil {
		return nil, err
	}
	return s.compute(algorithm, key, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// AuthenticateBuffer computes the MAC of the buffer's unread content.
func (s *macService) AuthenticateBuffer(ctx context.Context, algorithm algorithms.Mac, key []byte, buffer *bytes.Buffer) (*values.FrozenDigest, error) {
	if err := checkMacArgs(ctx, algorithm, key); err != nil {
		return nil, err
	}
	if buffer == nil {
		return nil, cryptoerr.NewArgument("buffer must not be nil")
	}
	return s.compute(algorithm, key, func(w io.Writer) error {
		_, err := buffer.WriteTo(w)
		return err
	})
}

// AuthenticateStream computes the MAC of everything the reader yields.
func (s *macService) AuthenticateStream(ctx context.Context, algorithm algorithms.Mac, key []byte, reader io.Reader) (*values.FrozenDigest, error) {
	if err := checkMacArgs(ctx, algorithm, key); err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, cryptoerr.NewArgument("reader must not be nil")
	}
	return s.compute(algorithm, key, func(w io.Writer) error {
		_, err := io.Copy(w, reader)
		return err
	})
}

// compute acquires the cached engine, keys it, feeds the input and wraps
// the raw code together with the descriptor's underlying digest
// algorithm, not the MAC descriptor itself.
func (s *macService) compute(algorithm algorithms.Mac, key []byte, feed func(io.Writer) error) (*values.FrozenDigest, error) {
	var sum []byte

	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		mac, err := ec.Mac(algorithm)
		if err != nil {
			return err
		}
		if err := mac.Init(key); err != nil {
			return err
		}
		if err := feed(writerFunc(mac.Write)); err != nil {
			return cryptoerr.WrapCryptography(err, "failed to feed MAC engine")
		}
		sum, err = mac.Sum()
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("authentication code computed",
		"algorithm", algorithm.CanonicalName(),
		"underlying", algorithm.Underlying().CanonicalName())

	return values.NewFrozenDigest(algorithm.Underlying(), sum)
}

func checkMacArgs(ctx context.Context, algorithm algorithms.Mac, key []byte) error {
	if err := ctx.Err(); err != nil {
		return cryptoerr.WrapCryptography(err, "operation aborted")
	}
	if !algorithm.Real() {
		return cryptoerr.NewArgument("authentication requires a real MAC algorithm, got %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
	return validators.RequireNonEmpty("key", key)
}

// writerFunc adapts a write method to io.Writer.
type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
