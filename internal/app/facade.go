package app

import (
	"bytes"
	"context"
	"crypto"
	"io"

	"github.com/panjf2000/ants/v2"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/domain/values"
	"github.com/servercurio/fabric-sub000/internal/infrastructure/engine"
	"github.com/servercurio/fabric-sub000/internal/pkg/config"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/logger"
)

// Cryptography is the unified façade over the digest, MAC, signature
// and encryption providers. Synchronous entry points block the caller
// for the full duration of the native operation; asynchronous entry
// points submit the same synchronous implementation to a shared worker
// pool and return an awaitable Future.
type Cryptography struct {
	providers.DigestProvider
	providers.MacProvider
	providers.SignatureProvider
	providers.EncryptionProvider

	contexts *engine.ContextPool
	workers  *ants.Pool
	logger   logger.Logger
}

var _ providers.Facade = (*Cryptography)(nil)

// NewCryptography wires the provider services, the execution-context
// pool and the async worker pool from the façade settings.
func NewCryptography(settings *config.FacadeSettings, log logger.Logger) (*Cryptography, error) {
	if settings == nil {
		return nil, cryptoerr.NewArgument("settings must not be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, cryptoerr.NewArgument("invalid façade settings: %v", err)
	}

	contexts, err := engine.NewContextPool(settings.Contexts, settings.ReseedInterval)
	if err != nil {
		return nil, err
	}

	digests, err := NewDigestService(contexts, log)
	if err != nil {
		return nil, err
	}
	macs, err := NewMacService(contexts, log)
	if err != nil {
		return nil, err
	}
	signatures, err := NewSignatureService(contexts, log)
	if err != nil {
		return nil, err
	}
	encryption, err := NewEncryptionService(contexts, log)
	if err != nil {
		return nil, err
	}

	workers, err := ants.NewPool(settings.Workers)
	if err != nil {
		contexts.Close()
		return nil, cryptoerr.WrapCryptography(err, "failed to create worker pool")
	}

	log.Info("cryptography facade initialized",
		"workers", settings.Workers,
		"contexts", settings.Contexts,
		"reseed_interval", settings.ReseedInterval)

	return &Cryptography{
		DigestProvider:     digests,
		MacProvider:        macs,
		SignatureProvider:  signatures,
		EncryptionProvider: encryption,
		contexts:           contexts,
		workers:            workers,
		logger:             log,
	}, nil
}

// Close tears down the worker pool and every execution context with its
// cached engine handles and random handle. It must not run concurrently
// with in-flight operations.
func (c *Cryptography) Close() error {
	c.workers.Release()
	c.contexts.Close()
	c.logger.Info("cryptography facade closed")
	return nil
}

// submit schedules fn on the shared worker pool. Each unit of work is
// simply "run the synchronous implementation and deliver its result".
func submit[T any](c *Cryptography, fn func() (T, error)) *Future[T] {
	future := newFuture[T]()

	err := c.workers.Submit(func() {
		if future.cancelled.Load() {
			var zero T
			future.complete(zero, cryptoerr.NewCryptography("operation cancelled before start"))
			return
		}
		future.started.Store(true)
		future.complete(fn())
	})
	if err != nil {
		var zero T
		future.complete(zero, cryptoerr.WrapCryptography(err, "failed to submit operation"))
	}
	return future
}

// DigestAsync is the non-blocking form of Digest.
func (c *Cryptography) DigestAsync(ctx context.Context, algorithm algorithms.Hash, data []byte) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.Digest(ctx, algorithm, data)
	})
}

// DigestBufferAsync is the non-blocking form of DigestBuffer.
func (c *Cryptography) DigestBufferAsync(ctx context.Context, algorithm algorithms.Hash, buffer *bytes.Buffer) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.DigestBuffer(ctx, algorithm, buffer)
	})
}

// DigestStreamAsync is the non-blocking form of DigestStream.
func (c *Cryptography) DigestStreamAsync(ctx context.Context, algorithm algorithms.Hash, reader io.Reader) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.DigestStream(ctx, algorithm, reader)
	})
}

// DigestPairAsync is the non-blocking form of DigestPair.
func (c *Cryptography) DigestPairAsync(ctx context.Context, algorithm algorithms.Hash, left, right *values.FrozenDigest) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.DigestPair(ctx, algorithm, left, right)
	})
}

// AuthenticateAsync is the non-blocking form of Authenticate.
func (c *Cryptography) AuthenticateAsync(ctx context.Context, algorithm algorithms.Mac, key, data []byte) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.Authenticate(ctx, algorithm, key, data)
	})
}

// AuthenticateBufferAsync is the non-blocking form of AuthenticateBuffer.
func (c *Cryptography) AuthenticateBufferAsync(ctx context.Context, algorithm algorithms.Mac, key []byte, buffer *bytes.Buffer) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.AuthenticateBuffer(ctx, algorithm, key, buffer)
	})
}

// AuthenticateStreamAsync is the non-blocking form of AuthenticateStream.
func (c *Cryptography) AuthenticateStreamAsync(ctx context.Context, algorithm algorithms.Mac, key []byte, reader io.Reader) *Future[*values.FrozenDigest] {
	return submit(c, func() (*values.FrozenDigest, error) {
		return c.AuthenticateStream(ctx, algorithm, key, reader)
	})
}

// SignAsync is the non-blocking form of Sign.
func (c *Cryptography) SignAsync(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey, data []byte) *Future[*values.Seal] {
	return submit(c, func() (*values.Seal, error) {
		return c.Sign(ctx, algorithm, key, data)
	})
}

// SignStreamAsync is the non-blocking form of SignStream.
func (c *Cryptography) SignStreamAsync(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey, reader io.Reader) *Future[*values.Seal] {
	return submit(c, func() (*values.Seal, error) {
		return c.SignStream(ctx, algorithm, key, reader)
	})
}

// VerifyAsync is the non-blocking form of Verify.
func (c *Cryptography) VerifyAsync(ctx context.Context, seal *values.Seal, key crypto.PublicKey, data []byte) *Future[bool] {
	return submit(c, func() (bool, error) {
		return c.Verify(ctx, seal, key, data)
	})
}

// VerifyStreamAsync is the non-blocking form of VerifyStream.
func (c *Cryptography) VerifyStreamAsync(ctx context.Context, seal *values.Seal, key crypto.PublicKey, reader io.Reader) *Future[bool] {
	return submit(c, func() (bool, error) {
		return c.VerifyStream(ctx, seal, key, reader)
	})
}

// EncryptAsync is the non-blocking form of Encrypt.
func (c *Cryptography) EncryptAsync(ctx context.Context, transformation algorithms.Transformation, key, nonce, plaintext []byte) *Future[[]byte] {
	return submit(c, func() ([]byte, error) {
		return c.Encrypt(ctx, transformation, key, nonce, plaintext)
	})
}

// DecryptAsync is the non-blocking form of Decrypt.
func (c *Cryptography) DecryptAsync(ctx context.Context, transformation algorithms.Transformation, key, nonce, ciphertext []byte) *Future[[]byte] {
	return submit(c, func() ([]byte, error) {
		return c.Decrypt(ctx, transformation, key, nonce, ciphertext)
	})
}

// EncryptBufferAsync is the non-blocking form of EncryptBuffer.
func (c *Cryptography) EncryptBufferAsync(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer) *Future[struct{}] {
	return submit(c, func() (struct{}, error) {
		return struct{}{}, c.EncryptBuffer(ctx, transformation, key, nonce, buffer)
	})
}

// DecryptBufferAsync is the non-blocking form of DecryptBuffer.
func (c *Cryptography) DecryptBufferAsync(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer) *Future[struct{}] {
	return submit(c, func() (struct{}, error) {
		return struct{}{}, c.DecryptBuffer(ctx, transformation, key, nonce, buffer)
	})
}

// EncryptStreamAsync is the non-blocking form of EncryptStream.
func (c *Cryptography) EncryptStreamAsync(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer) *Future[struct{}] {
	return submit(c, func() (struct{}, error) {
		return struct{}{}, c.EncryptStream(ctx, transformation, key, nonce, source, sink)
	})
}

// DecryptStreamAsync is the non-blocking form of DecryptStream.
func (c *Cryptography) DecryptStreamAsync(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer) *Future[struct{}] {
	return submit(c, func() (struct{}, error) {
		return struct{}{}, c.DecryptStream(ctx, transformation, key, nonce, source, sink)
	})
}

// GenerateNonceAsync is the non-blocking form of GenerateNonce.
func (c *Cryptography) GenerateNonceAsync(ctx context.Context, transformation algorithms.Transformation) *Future[[]byte] {
	return submit(c, func() ([]byte, error) {
		return c.GenerateNonce(ctx, transformation)
	})
}

// GenerateKeyAsync is the non-blocking form of GenerateKey.
func (c *Cryptography) GenerateKeyAsync(ctx context.Context, cipher algorithms.Cipher) *Future[[]byte] {
	return submit(c, func() ([]byte, error) {
		return c.GenerateKey(ctx, cipher)
	})
}
