package engine

import (
	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// Mode parameter derivation constants.
const (
	// AEADNonceSize is the nonce length for GCM and ChaCha20-Poly1305.
	// 12 bytes is the size that avoids an extra internal block
	// computation in GCM.
	AEADNonceSize = 12

	// AEADTagBits is the authentication tag length for AEAD modes.
	AEADTagBits = 128

	// CTRCounterBytes is the width of the trailing counter field inside
	// a CTR-mode IV. The counter bytes must start at zero.
	CTRCounterBytes = 4
)

// Params holds the concrete initialization parameters for keying a
// cipher engine: the full IV and, for AEAD modes, the tag length.
type Params struct {
	IV      []byte
	TagBits int
}

// NonceSize derives the expected nonce length for the transformation
// given the engine's native block size: 12 bytes for AEAD modes,
// blockSize minus the counter field for CTR, and the full block size
// for every other mode including the engine-default case.
func NonceSize(transformation algorithms.Transformation, blockSize int) (int, error) {
	if !transformation.Algorithm.Real() {
		return 0, cryptoerr.NewArgument("transformation requires a real cipher algorithm, got %q",
			transformation.Algorithm.CanonicalName())
	}

	if transformation.AEAD() {
		return AEADNonceSize, nil
	}

	if blockSize <= CTRCounterBytes {
		return 0, cryptoerr.NewArgument("block size must exceed the counter field width, got %d", blockSize)
	}

	if transformation.Mode == algorithms.ModeCTR {
		return blockSize - CTRCounterBytes, nil
	}
	return blockSize, nil
}

// DeriveParams translates the transformation and the caller's nonce into
// the initialization parameters the engine requires. An empty nonce is
// always rejected. A CTR nonce longer than blockSize-4 is silently
// truncated; callers that request nonces through GenerateNonce never
// hit this case.
func DeriveParams(transformation algorithms.Transformation, nonce []byte, blockSize int) (Params, error) {
	if !transformation.Algorithm.Real() {
		return Params{}, cryptoerr.NewArgument("transformation requires a real cipher algorithm, got %q",
			transformation.Algorithm.CanonicalName())
	}
	if len(nonce) == 0 {
		return Params{}, cryptoerr.NewCryptography("empty nonce for transformation %s", transformation)
	}

	if transformation.AEAD() {
		if len(nonce) != AEADNonceSize {
			return Params{}, cryptoerr.NewCryptography("nonce length mismatch for %s: want %d bytes, got %d",
				transformation, AEADNonceSize, len(nonce))
		}
		iv := make([]byte, AEADNonceSize)
		copy(iv, nonce)
		return Params{IV: iv, TagBits: AEADTagBits}, nil
	}

	if transformation.Mode == algorithms.ModeCTR {
		limit := blockSize - CTRCounterBytes
		if limit <= 0 {
			return Params{}, cryptoerr.NewArgument("block size must exceed the counter field width, got %d", blockSize)
		}
		if len(nonce) > limit {
			nonce = nonce[:limit]
		}
		// Zero-extend to a full block: nonce bytes first, trailing
		// counter field left at zero.
		iv := make([]byte, blockSize)
		copy(iv, nonce)
		return Params{IV: iv}, nil
	}

	iv := make([]byte, len(nonce))
	copy(iv, nonce)
	return Params{IV: iv}, nil
}
