//go:build unit
// +build unit

package engine

import (
	"bytes"
	"crypto/aes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

func testKey(t *testing.T, size int) []byte {
	t.Helper()
	key := make([]byte, size)
	for i := range key {
		key[i] = byte(i * 7)
	}
	return key
}

func deriveTestParams(t *testing.T, engine *CipherEngine) Params {
	t.Helper()
	size, err := NonceSize(engine.Transformation(), engine.BlockSize())
	require.NoError(t, err)

	nonce := make([]byte, size)
	for i := range nonce {
		nonce[i] = byte(i + 1)
	}
	params, err := DeriveParams(engine.Transformation(), nonce, engine.BlockSize())
	require.NoError(t, err)
	return params
}

func TestCipherEngineRoundTrips(t *testing.T) {
	cases := []struct {
		name           string
		transformation algorithms.Transformation
	}{
		{"AES128GCM", algorithms.NewTransformationWithMode(algorithms.CipherAES128, algorithms.ModeGCM, algorithms.PaddingNoPad)},
		{"AES256GCM", algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)},
		{"ChaCha20Poly1305", algorithms.NewTransformation(algorithms.CipherChaCha20)},
		{"AES256CTR", algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeCTR, algorithms.PaddingNoPad)},
		{"AES256CBCPKCS5", algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeCBC, algorithms.PaddingPKCS5)},
		{"AES192Default", algorithms.NewTransformation(algorithms.CipherAES192)},
	}

	plaintexts := [][]byte{
		[]byte("x"),
		[]byte("a sub-block message"),
		bytes.Repeat([]byte("0123456789abcdef"), 5),
		bytes.Repeat([]byte{0xAB}, 1000),
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			engine, err := newCipherEngine(tc.transformation)
			require.NoError(t, err)
			key := testKey(t, tc.transformation.Algorithm.ByteLength())
			params := deriveTestParams(t, engine)

			for _, plaintext := range plaintexts {
				ciphertext, err := engine.Encrypt(key, params, plaintext)
				require.NoError(t, err)
				assert.NotEqual(t, plaintext, ciphertext)

				decrypted, err := engine.Decrypt(key, params, ciphertext)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			}
		})
	}
}

func TestCipherEngineDecryptFailures(t *testing.T) {
	gcm := algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)
	engine, err := newCipherEngine(gcm)
	require.NoError(t, err)

	key := testKey(t, algorithms.CipherAES256.ByteLength())
	params := deriveTestParams(t, engine)
	ciphertext, err := engine.Encrypt(key, params, []byte("authenticated payload"))
	require.NoError(t, err)

	t.Run("TamperedCiphertext", func(t *testing.T) {
		tampered := bytes.Clone(ciphertext)
		tampered[0] ^= 0x01
		_, err := engine.Decrypt(key, params, tampered)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})

	t.Run("WrongKey", func(t *testing.T) {
		wrongKey := testKey(t, algorithms.CipherAES256.ByteLength())
		wrongKey[0] ^= 0xFF
		_, err := engine.Decrypt(wrongKey, params, ciphertext)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})

	t.Run("ShortKey", func(t *testing.T) {
		_, err := engine.Encrypt([]byte("short"), params, []byte("data"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})
}

func TestCipherEngineCBCConstraints(t *testing.T) {
	noPad := algorithms.NewTransformationWithMode(algorithms.CipherAES128, algorithms.ModeCBC, algorithms.PaddingNoPad)
	engine, err := newCipherEngine(noPad)
	require.NoError(t, err)
	key := testKey(t, algorithms.CipherAES128.ByteLength())
	params := deriveTestParams(t, engine)

	t.Run("NoPadRequiresBlockMultiple", func(t *testing.T) {
		_, err := engine.Encrypt(key, params, []byte("seventeen bytes!!"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})

	t.Run("NoPadBlockMultipleRoundTrips", func(t *testing.T) {
		plaintext := bytes.Repeat([]byte{0x42}, 2*aes.BlockSize)
		ciphertext, err := engine.Encrypt(key, params, plaintext)
		require.NoError(t, err)
		decrypted, err := engine.Decrypt(key, params, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("TruncatedCiphertextRejected", func(t *testing.T) {
		_, err := engine.Decrypt(key, params, make([]byte, aes.BlockSize-1))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})
}

func TestCipherEngineSentinelRejected(t *testing.T) {
	_, err := newCipherEngine(algorithms.NewTransformation(algorithms.CipherNone))
	require.Error(t, err)
	assert.True(t, cryptoerr.IsCryptography(err))
}

func TestPKCS5Padding(t *testing.T) {
	t.Run("FullBlockOfPaddingForAlignedInput", func(t *testing.T) {
		padded := padPKCS5(bytes.Repeat([]byte{1}, aes.BlockSize), aes.BlockSize)
		require.Len(t, padded, 2*aes.BlockSize)
		assert.Equal(t, byte(aes.BlockSize), padded[len(padded)-1])
	})

	t.Run("RoundTrip", func(t *testing.T) {
		original := []byte("odd sized input")
		padded := padPKCS5(bytes.Clone(original), aes.BlockSize)
		require.Zero(t, len(padded)%aes.BlockSize)

		unpadded, err := unpadPKCS5(padded, aes.BlockSize)
		require.NoError(t, err)
		assert.Equal(t, original, unpadded)
	})

	t.Run("MalformedPaddingRejected", func(t *testing.T) {
		bad := bytes.Repeat([]byte{0x00}, aes.BlockSize)
		_, err := unpadPKCS5(bad, aes.BlockSize)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))

		inconsistent := append(bytes.Repeat([]byte{7}, aes.BlockSize-1), 3)
		_, err = unpadPKCS5(inconsistent, aes.BlockSize)
		require.Error(t, err)
	})
}
