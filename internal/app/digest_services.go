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
)

// digestService implements the DigestProvider interface on top of the
// execution-context pool.
type digestService struct {
	pool   *engine.ContextPool
	logger logger.Logger
}

// NewDigestService creates a new digestService instance.
func NewDigestService(pool *engine.ContextPool, logger logger.Logger) (providers.DigestProvider, error) {
	if pool == nil {
		return nil, cryptoerr.NewArgument("pool must not be nil")
	}
	return &digestService{pool: pool, logger: logger}, nil
}

// Digest hashes the given bytes with the selected algorithm.
func (s *digestService) Digest(ctx context.Context, algorithm algorithms.Hash, data []byte) (*values.FrozenDigest, error) {
	if err := checkDigestAlgorithm(ctx, algorithm); err != nil {
		return nil, err
	}
	return s.compute(algorithm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// DigestBuffer hashes the buffer's unread content, consuming it.
func (s *digestService) DigestBuffer(ctx context.Context, algorithm algorithms.Hash, buffer *bytes.Buffer) (*values.FrozenDigest, error) {
	if err := checkDigestAlgorithm(ctx, algorithm); err != nil {
		return nil, err
	}
	if buffer == nil {
		return nil, cryptoerr.NewArgument("buffer must not be nil")
	}
	return s.compute(algorithm, func(w io.Writer) error {
		_, err := buffer.WriteTo(w)
		return err
	})
}

// DigestStream hashes everything the reader yields until EOF.
func (s *digestService) DigestStream(ctx context.Context, algorithm algorithms.Hash, reader io.Reader) (*values.FrozenDigest, error) {
	if err := checkDigestAlgorithm(ctx, algorithm); err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, cryptoerr.NewArgument("reader must not be nil")
	}
	return s.compute(algorithm, func(w io.Writer) error {
		_, err := io.Copy(w, reader)
		return err
	})
}

// DigestPair hashes the concatenation of two digest values, substituting
// the EMPTY sentinel for a nil operand.
func (s *digestService) DigestPair(ctx context.Context, algorithm algorithms.Hash, left, right *values.FrozenDigest) (*values.FrozenDigest, error) {
	if err := checkDigestAlgorithm(ctx, algorithm); err != nil {
		return nil, err
	}
	if left == nil {
		left = values.EmptyDigest()
	}
	if right == nil {
		right = values.EmptyDigest()
	}
	return s.compute(algorithm, func(w io.Writer) error {
		if _, err := w.Write(left.Bytes()); err != nil {
			return err
		}
		_, err := w.Write(right.Bytes())
		return err
	})
}

// compute acquires the cached engine, feeds it through feed, finalizes
// and wraps the raw output into a frozen digest value.
func (s *digestService) compute(algorithm algorithms.Hash, feed func(io.Writer) error) (*values.FrozenDigest, error) {
	var sum []byte

	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		h, err := ec.Digest(algorithm)
		if err != nil {
			return err
		}
		h.Reset()
		if err := feed(h); err != nil {
			return cryptoerr.WrapCryptography(err, "failed to feed digest engine")
		}
		sum = h.Sum(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("digest computed",
		"algorithm", algorithm.CanonicalName(),
		"size", len(sum))

	return values.NewFrozenDigest(algorithm, sum)
}

func checkDigestAlgorithm(ctx context.Context, algorithm algorithms.Hash) error {
	if err := ctx.Err(); err != nil {
		return cryptoerr.WrapCryptography(err, "operation aborted")
	}
	if !algorithm.Real() {
		return cryptoerr.NewArgument("digest requires a real hash algorithm, got %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
	return nil
}
