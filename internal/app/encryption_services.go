package app

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/infrastructure/engine"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
	"github.com/servercurio/fabric-sub000/internal/pkg/validators"
)

// encryptionService implements the EncryptionProvider interface on top
// of the execution-context pool. Every call shape follows the same
// sequence: acquire the cached engine, derive the initialization
// parameters from the transformation and nonce, key the engine, feed
// all input, finalize.
type encryptionService struct {
	pool   *engine.ContextPool
	logger logger.Logger
}

// NewEncryptionService creates a new encryptionService instance.
func NewEncryptionService(pool *engine.ContextPool, logger logger.Logger) (providers.EncryptionProvider, error) {
	if pool == nil {
		return nil, cryptoerr.NewArgument("pool must not be nil")
	}
	return &encryptionService{pool: pool, logger: logger}, nil
}

// Encrypt encrypts the plaintext under the key and nonce.
func (s *encryptionService) Encrypt(ctx context.Context, transformation algorithms.Transformation, key, nonce, plaintext []byte) ([]byte, error) {
	if err := checkCipherArgs(ctx, transformation, key); err != nil {
		return nil, err
	}
	return s.run(transformation, key, nonce, plaintext, true)
}

// Decrypt reverses Encrypt. Bad keys, corrupted ciphertexts and tag
// verification failures are indistinguishable by design.
func (s *encryptionService) Decrypt(ctx context.Context, transformation algorithms.Transformation, key, nonce, ciphertext []byte) ([]byte, error) {
	if err := checkCipherArgs(ctx, transformation, key); err != nil {
		return nil, err
	}
	return s.run(transformation, key, nonce, ciphertext, false)
}

// EncryptBuffer encrypts the buffer's unread content in place.
func (s *encryptionService) EncryptBuffer(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer) error {
	return s.runBuffer(ctx, transformation, key, nonce, buffer, true)
}

// DecryptBuffer reverses EncryptBuffer.
func (s *encryptionService) DecryptBuffer(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer) error {
	return s.runBuffer(ctx, transformation, key, nonce, buffer, false)
}

// EncryptStream drains the source fully, encrypts, and writes the
// ciphertext to the sink. File-backed sinks are synced so the
// ciphertext is durably persisted before the call returns.
func (s *encryptionService) EncryptStream(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer) error {
	return s.runStream(ctx, transformation, key, nonce, source, sink, true)
}

// DecryptStream reverses EncryptStream.
func (s *encryptionService) DecryptStream(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer) error {
	return s.runStream(ctx, transformation, key, nonce, source, sink, false)
}

// NonceSize returns the nonce length the transformation expects,
// reading the block size from the cached engine.
func (s *encryptionService) NonceSize(transformation algorithms.Transformation) (int, error) {
	var size int

	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		ce, err := ec.Cipher(transformation)
		if err != nil {
			return err
		}
		size, err = engine.NonceSize(transformation, ce.BlockSize())
		return err
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

// GenerateNonce draws a fresh nonce of the expected length from the
// context's secure random source. Nonces are never tracked; uniqueness
// per key is the caller's responsibility.
func (s *encryptionService) GenerateNonce(ctx context.Context, transformation algorithms.Transformation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, cryptoerr.WrapCryptography(err, "operation aborted")
	}

	var nonce []byte
	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		ce, err := ec.Cipher(transformation)
		if err != nil {
			return err
		}
		size, err := engine.NonceSize(transformation, ce.BlockSize())
		if err != nil {
			return err
		}
		rng, err := ec.Random()
		if err != nil {
			return err
		}
		nonce = make([]byte, size)
		_, err = rng.Read(nonce)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nonce, nil
}

// GenerateKey draws a fresh key of the cipher's key length from the
// context's secure random source.
func (s *encryptionService) GenerateKey(ctx context.Context, cipher algorithms.Cipher) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, cryptoerr.WrapCryptography(err, "operation aborted")
	}
	if !cipher.Real() {
		return nil, cryptoerr.NewArgument("key generation requires a real cipher algorithm, got %q (id %d)",
			cipher.CanonicalName(), cipher.ID())
	}

	var key []byte
	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		rng, err := ec.Random()
		if err != nil {
			return err
		}
		key = make([]byte, cipher.ByteLength())
		_, err = rng.Read(key)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("symmetric key generated",
		"algorithm", cipher.KeyAlgorithmName(),
		"bits", cipher.BitLength())

	return key, nil
}

func (s *encryptionService) run(transformation algorithms.Transformation, key, nonce, input []byte, encrypt bool) ([]byte, error) {
	var output []byte

	err := s.pool.Do(func(ec *engine.ExecutionContext) error {
		ce, err := ec.Cipher(transformation)
		if err != nil {
			return err
		}
		params, err := engine.DeriveParams(transformation, nonce, ce.BlockSize())
		if err != nil {
			return err
		}
		if encrypt {
			output, err = ce.Encrypt(key, params, input)
		} else {
			output, err = ce.Decrypt(key, params, input)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	operation := "data decrypted"
	if encrypt {
		operation = "data encrypted"
	}
	s.logger.Info(operation,
		"transformation", transformation.String(),
		"input_size", len(input),
		"output_size", len(output))

	return output, nil
}

func (s *encryptionService) runBuffer(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer, encrypt bool) error {
	if err := checkCipherArgs(ctx, transformation, key); err != nil {
		return err
	}
	if buffer == nil {
		return cryptoerr.NewArgument("buffer must not be nil")
	}

	output, err := s.run(transformation, key, nonce, buffer.Bytes(), encrypt)
	if err != nil {
		return err
	}
	buffer.Reset()
	buffer.Write(output)
	return nil
}

func (s *encryptionService) runStream(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer, encrypt bool) error {
	if err := checkCipherArgs(ctx, transformation, key); err != nil {
		return err
	}
	if source == nil {
		return cryptoerr.NewArgument("source must not be nil")
	}
	if sink == nil {
		return cryptoerr.NewArgument("sink must not be nil")
	}

	// The source is drained fully before the engine finalizes; a failure
	// past this point can leave the sink partially written, and cleanup
	// is the caller's responsibility.
	input, err := io.ReadAll(source)
	if err != nil {
		return cryptoerr.WrapCryptography(err, "failed to drain source")
	}

	output, err := s.run(transformation, key, nonce, input, encrypt)
	if err != nil {
		return err
	}

	if _, err := sink.Write(output); err != nil {
		return cryptoerr.WrapCryptography(err, "failed to write sink")
	}
	if file, ok := sink.(*os.File); ok {
		if err := file.Sync(); err != nil {
			return cryptoerr.WrapCryptography(err, "failed to sync sink")
		}
	}
	return nil
}

func checkCipherArgs(ctx context.Context, transformation algorithms.Transformation, key []byte) error {
	if err := ctx.Err(); err != nil {
		return cryptoerr.WrapCryptography(err, "operation aborted")
	}
	if !transformation.Algorithm.Real() {
		return cryptoerr.NewArgument("encryption requires a real cipher algorithm, got %q (id %d)",
			transformation.Algorithm.CanonicalName(), transformation.Algorithm.ID())
	}
	return validators.RequireNonEmpty("key", key)
}
