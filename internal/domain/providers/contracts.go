package providers

import (
	"bytes"
	"context"
	"crypto"
	"io"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/values"
)

// DigestProvider computes message digests over the supported input
// shapes. Streams are fully drained before finalizing.
type DigestProvider interface {
	// Digest hashes the given bytes with the selected algorithm.
	Digest(ctx context.Context, algorithm algorithms.Hash, data []byte) (*values.FrozenDigest, error)

	// DigestBuffer hashes the buffer's unread content, consuming it.
	DigestBuffer(ctx context.Context, algorithm algorithms.Hash, buffer *bytes.Buffer) (*values.FrozenDigest, error)

	// DigestStream hashes everything the reader yields until EOF.
	DigestStream(ctx context.Context, algorithm algorithms.Hash, reader io.Reader) (*values.FrozenDigest, error)

	// DigestPair hashes the concatenation of two digest values. A nil
	// operand is substituted with the EMPTY sentinel, preserving a
	// stable "mix of two digests" construction when one side is absent.
	DigestPair(ctx context.Context, algorithm algorithms.Hash, left, right *values.FrozenDigest) (*values.FrozenDigest, error)
}

// MacProvider computes keyed message-authentication codes. Results are
// tagged with the MAC descriptor's underlying digest algorithm.
type MacProvider interface {
	// Authenticate computes the MAC of the given bytes under the key.
	Authenticate(ctx context.Context, algorithm algorithms.Mac, key, data []byte) (*values.FrozenDigest, error)

	// AuthenticateBuffer computes the MAC of the buffer's unread content.
	AuthenticateBuffer(ctx context.Context, algorithm algorithms.Mac, key []byte, buffer *bytes.Buffer) (*values.FrozenDigest, error)

	// AuthenticateStream computes the MAC of everything the reader yields.
	AuthenticateStream(ctx context.Context, algorithm algorithms.Mac, key []byte, reader io.Reader) (*values.FrozenDigest, error)
}

// SignatureProvider creates and verifies digital signatures. Keys are
// supplied by the caller; RSA descriptors expect *rsa.PrivateKey /
// *rsa.PublicKey, ECDSA descriptors *ecdsa.PrivateKey / *ecdsa.PublicKey.
type SignatureProvider interface {
	// Sign condenses the message with the descriptor's digest and signs it.
	Sign(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey, data []byte) (*values.Seal, error)

	// SignStream signs everything the reader yields until EOF.
	SignStream(ctx context.Context, algorithm algorithms.Signature, key crypto.PrivateKey, reader io.Reader) (*values.Seal, error)

	// Verify checks the seal against the message under the public key.
	Verify(ctx context.Context, seal *values.Seal, key crypto.PublicKey, data []byte) (bool, error)

	// VerifyStream checks the seal against the reader's full content.
	VerifyStream(ctx context.Context, seal *values.Seal, key crypto.PublicKey, reader io.Reader) (bool, error)
}

// EncryptionProvider performs symmetric encryption and decryption over
// the supported input shapes. Nonce uniqueness per key is the caller's
// responsibility; nonces should be requested through GenerateNonce so
// their length matches the transformation.
type EncryptionProvider interface {
	// Encrypt encrypts the plaintext under the key and nonce.
	Encrypt(ctx context.Context, transformation algorithms.Transformation, key, nonce, plaintext []byte) ([]byte, error)

	// Decrypt reverses Encrypt. Any engine failure, including tag
	// verification failure, surfaces as the single cryptography error kind.
	Decrypt(ctx context.Context, transformation algorithms.Transformation, key, nonce, ciphertext []byte) ([]byte, error)

	// EncryptBuffer encrypts the buffer's unread content, replacing it
	// with the ciphertext.
	EncryptBuffer(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer) error

	// DecryptBuffer reverses EncryptBuffer.
	DecryptBuffer(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, buffer *bytes.Buffer) error

	// EncryptStream drains the source fully, encrypts, and writes the
	// ciphertext to the sink, syncing file-backed sinks.
	EncryptStream(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer) error

	// DecryptStream reverses EncryptStream.
	DecryptStream(ctx context.Context, transformation algorithms.Transformation, key, nonce []byte, source io.Reader, sink io.Writer) error

	// NonceSize returns the nonce length the transformation expects.
	NonceSize(transformation algorithms.Transformation) (int, error)

	// GenerateNonce draws a fresh nonce of the expected length from the
	// secure random source. Nonces are not tracked; uniqueness per key
	// is the caller's responsibility.
	GenerateNonce(ctx context.Context, transformation algorithms.Transformation) ([]byte, error)

	// GenerateKey draws a fresh key of the cipher's key length from the
	// secure random source.
	GenerateKey(ctx context.Context, cipher algorithms.Cipher) ([]byte, error)
}

// Facade bundles every provider behind one surface and adds the
// asynchronous entry points and lifecycle management. Close tears down
// the worker pool, all cached engine handles and the random handles;
// it must not run concurrently with in-flight operations.
type Facade interface {
	DigestProvider
	MacProvider
	SignatureProvider
	EncryptionProvider

	Close() error
}
