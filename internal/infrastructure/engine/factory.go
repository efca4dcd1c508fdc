package engine

import (
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5" // #nosec G501 -- exposed for legacy interoperability only
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/sha3"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// newDigestEngine constructs a fresh digest engine from the descriptor's
// canonical name. Engine construction failures, including an unknown or
// sentinel descriptor, surface as the cryptography error kind.
func newDigestEngine(algorithm algorithms.Hash) (hash.Hash, error) {
	switch algorithm {
	case algorithms.HashMD5:
		return md5.New(), nil // #nosec G401
	case algorithms.HashSHA1:
		return sha1.New(), nil // #nosec G401
	case algorithms.HashSHA256:
		return sha256.New(), nil
	case algorithms.HashSHA384:
		return sha512.New384(), nil
	case algorithms.HashSHA512:
		return sha512.New(), nil
	case algorithms.HashSHA3256:
		return sha3.New256(), nil
	case algorithms.HashSHA3512:
		return sha3.New512(), nil
	default:
		return nil, cryptoerr.NewCryptography("no engine for digest algorithm %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
}

// cryptoHash maps a hash descriptor to the platform's crypto.Hash value,
// needed by RSA-PSS signing.
func cryptoHash(algorithm algorithms.Hash) (crypto.Hash, error) {
	switch algorithm {
	case algorithms.HashSHA256:
		return crypto.SHA256, nil
	case algorithms.HashSHA384:
		return crypto.SHA384, nil
	case algorithms.HashSHA512:
		return crypto.SHA512, nil
	default:
		return 0, cryptoerr.NewCryptography("digest algorithm %q is not usable for signing",
			algorithm.CanonicalName())
	}
}

// newBlockEngine constructs the block cipher named by the descriptor,
// validating the key length against the descriptor's key length.
func newBlockEngine(algorithm algorithms.Cipher, key []byte) (cipher.Block, error) {
	if !algorithm.Real() {
		return nil, cryptoerr.NewCryptography("no engine for cipher algorithm %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
	if len(key) != algorithm.ByteLength() {
		return nil, cryptoerr.NewCryptography("key length mismatch for %s-%d: want %d bytes, got %d",
			algorithm.CanonicalName(), algorithm.BitLength(), algorithm.ByteLength(), len(key))
	}

	switch algorithm {
	case algorithms.CipherAES128, algorithms.CipherAES192, algorithms.CipherAES256:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, cryptoerr.WrapCryptography(err, "failed to construct AES engine")
		}
		return block, nil
	default:
		return nil, cryptoerr.NewCryptography("cipher algorithm %q has no block engine",
			algorithm.CanonicalName())
	}
}

// newAEADEngine constructs the authenticated-encryption engine for the
// transformation: AES-GCM with a 128-bit tag, or ChaCha20-Poly1305.
func newAEADEngine(transformation algorithms.Transformation, key []byte) (cipher.AEAD, error) {
	if transformation.Algorithm == algorithms.CipherChaCha20 {
		if len(key) != chacha20poly1305.KeySize {
			return nil, cryptoerr.NewCryptography("key length mismatch for ChaCha20-Poly1305: want %d bytes, got %d",
				chacha20poly1305.KeySize, len(key))
		}
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, cryptoerr.WrapCryptography(err, "failed to construct ChaCha20-Poly1305 engine")
		}
		return aead, nil
	}

	block, err := newBlockEngine(transformation.Algorithm, key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, cryptoerr.WrapCryptography(err, "failed to construct GCM engine")
	}
	return aead, nil
}
