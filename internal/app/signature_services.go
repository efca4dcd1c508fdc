package app

import (
	"context"
	"crypto"
	"io"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/domain/values"
	"github.com/servercurio/fabric-sub000/internal/infrastructure/engine"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
	"github.com/servercurio/fabric-sub000/internal/pkg/validators"
)

// signatureService implements the SignatureProvider interface on top of
// the execution-context pool.
type signatureService struct {
	pool   *engine.ContextPool
	logger logger.Logger
}

// NewSignatureService creates a new signatureService instance.
func NewSignatureService(pool *engine.ContextPool, logger logger.Logger) (providers.SignatureProvider, error) {
	if pool == nil {
		return nil, cryptoerr.NewArgument("pool must not be nil")
	}
	return &signatureService{pool: pool, logger: logger}, nil
}

// Sign condenses the message with the descriptor's digest and signs it
// with the private key.
func (s *signatureService) Sign(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey, data []byte) (*values.Seal, error) {
	if err := checkSignatureArgs(ctx, algorithm, key); err != nil {
		return nil, err
	}
	return s.sign(algorithm, key, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// SignStream signs everything the reader yields until EOF.
func (s *signatureService) SignStream(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey, reader io.Reader) (*values.Seal, error) {
	if err := checkSignatureArgs(ctx, algorithm, key); err != nil {
		return nil, err
	}
	if reader == nil {
		return nil, cryptoerr.NewArgument("reader must not be nil")
	}
	return s.sign(algorithm, key, func(w io.Writer) error {
		_, err := io.Copy(w, reader)
		return err
	})
}

// Verify checks the seal against the message under the public key.
func (s *signatureService) Verify(ctx context.Context, seal *values.Seal, key crypto.PublicKey, data []byte) (bool, error) {
	if err := checkVerifyArgs(ctx, seal, key); err != nil {
		return false, err
	}
	return s.verify(seal, key, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// VerifyStream checks the seal against the reader's full content.
func (s *signatureService) VerifyStream(ctx context.Context, seal *values.Seal, key crypto.PublicKey, reader io.Reader) (bool, error) {
	if err := checkVerifyArgs(ctx, seal, key); err != nil {
		return false, err
	}
	if reader == nil {
		return false, cryptoerr.NewArgument("reader must not be nil")
	}
	return s.verify(seal, key, func(w io.Writer) error {
		_, err := io.Copy(w, reader)
		return err
	})
}

func (s *signatureService) sign(algorithm algorithms.Signature, key crypto.PrivateKey, feed func(io.Writer) error) (*values.Seal, error) {
	var signature []byte

	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		se, err := ec.Signature(algorithm)
		if err != nil {
			return err
		}
		rng, err := ec.Random()
		if err != nil {
			return err
		}
		se.Init()
		if err := feed(writerFunc(se.Write)); err != nil {
			return cryptoerr.WrapCryptography(err, "failed to feed signature engine")
		}
		signature, err = se.SignFinal(rng, key)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("message signed",
		"algorithm", algorithm.CanonicalName(),
		"signature_size", len(signature))

	return values.NewSeal(algorithm, signature)
}

func (s *signatureService) verify(seal *values.Seal, key crypto.PublicKey, feed func(io.Writer) error) (bool, error) {
	var valid bool

	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		se, err := ec.Signature(seal.Algorithm())
		if err != nil {
			return err
		}
		se.Init()
		if err := feed(writerFunc(se.Write)); err != nil {
			return cryptoerr.WrapCryptography(err, "failed to feed signature engine")
		}
		valid, err = se.VerifyFinal(key, seal.Bytes())
		return err
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("signature checked",
		"algorithm", seal.Algorithm().CanonicalName(),
		"valid", valid)

	return valid, nil
}

func checkSignatureArgs(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey) error {
	if err := ctx.Err(); err != nil {
		return cryptoerr.WrapCryptography(err, "operation aborted")
	}
	if !algorithm.Real() {
		return cryptoerr.NewArgument("signing requires a real signature algorithm, got %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
	return validators.RequireNonNil("key", key)
}

func checkVerifyArgs(ctx context.Context, seal *values.Seal, key crypto.PublicKey) error {
	if err := ctx.Err(); err != nil {
		return cryptoerr.WrapCryptography(err, "operation aborted")
	}
	if seal == nil {
		return cryptoerr.NewArgument("seal must not be nil")
	}
	if !seal.Algorithm().Real() {
		return cryptoerr.NewArgument("verification requires a real signature algorithm, got %q",
			seal.Algorithm().CanonicalName())
	}
	return validators.RequireNonNil("key", key)
}
