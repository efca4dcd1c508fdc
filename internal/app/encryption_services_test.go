//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/infrastructure/engine"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	pkgTesting "github.com/servercurio/fabric-sub000/internal/pkg/testing"
)

func setupEncryptionService(t *testing.T) providers.EncryptionProvider {
	t.Helper()
	pool, err := engine.NewContextPool(2, engine.DefaultReseedInterval)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	service, err := NewEncryptionService(pool, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)
	return service
}

func encryptionKey(transformation algorithms.Transformation) []byte {
	key := make([]byte, transformation.Algorithm.ByteLength())
	for i := range key {
		key[i] = byte(i + 13)
	}
	return key
}

func TestEncryptDecryptRoundTrips(t *testing.T) {
	service := setupEncryptionService(t)

	transformations := []struct {
		name           string
		transformation algorithms.Transformation
	}{
		{"AES128GCM", algorithms.NewTransformationWithMode(algorithms.CipherAES128, algorithms.ModeGCM, algorithms.PaddingNoPad)},
		{"AES256GCM", algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)},
		{"ChaCha20Poly1305", algorithms.NewTransformation(algorithms.CipherChaCha20)},
		{"AES192CTR", algorithms.NewTransformationWithMode(algorithms.CipherAES192, algorithms.ModeCTR, algorithms.PaddingNoPad)},
		{"AES256CBCPKCS5", algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeCBC, algorithms.PaddingPKCS5)},
		{"AES256Default", algorithms.NewTransformation(algorithms.CipherAES256)},
	}

	plaintexts := [][]byte{
		[]byte("short"),
		bytes.Repeat([]byte("0123456789abcdef"), 3),
		bytes.Repeat([]byte{0x5A}, 4096),
	}

	for _, tc := range transformations {
		t.Run(tc.name, func(t *testing.T) {
			key := encryptionKey(tc.transformation)
			nonce, err := service.GenerateNonce(context.Background(), tc.transformation)
			require.NoError(t, err)

			for _, plaintext := range plaintexts {
				ciphertext, err := service.Encrypt(context.Background(), tc.transformation, key, nonce, plaintext)
				require.NoError(t, err)
				assert.NotEqual(t, plaintext, ciphertext)

				decrypted, err := service.Decrypt(context.Background(), tc.transformation, key, nonce, ciphertext)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			}
		})
	}
}

func TestNonceSizes(t *testing.T) {
	service := setupEncryptionService(t)

	gcm := algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)
	size, err := service.NonceSize(gcm)
	require.NoError(t, err)
	assert.Equal(t, engine.AEADNonceSize, size)

	ctr := algorithms.NewTransformationWithMode(algorithms.CipherAES128, algorithms.ModeCTR, algorithms.PaddingNoPad)
	size, err = service.NonceSize(ctr)
	require.NoError(t, err)
	assert.Equal(t, 12, size)

	cbc := algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeCBC, algorithms.PaddingPKCS5)
	size, err = service.NonceSize(cbc)
	require.NoError(t, err)
	assert.Equal(t, 16, size)

	nonce, err := service.GenerateNonce(context.Background(), ctr)
	require.NoError(t, err)
	assert.Len(t, nonce, 12)
	assert.NotEqual(t, make([]byte, 12), nonce)
}

func TestGenerateKey(t *testing.T) {
	service := setupEncryptionService(t)

	ciphers := []struct {
		cipher algorithms.Cipher
		bytes  int
	}{
		{algorithms.CipherAES128, 16},
		{algorithms.CipherAES192, 24},
		{algorithms.CipherAES256, 32},
		{algorithms.CipherChaCha20, 32},
	}

	for _, tc := range ciphers {
		key, err := service.GenerateKey(context.Background(), tc.cipher)
		require.NoError(t, err)
		assert.Len(t, key, tc.bytes)
		assert.NotEqual(t, make([]byte, tc.bytes), key)

		other, err := service.GenerateKey(context.Background(), tc.cipher)
		require.NoError(t, err)
		assert.NotEqual(t, key, other)
	}

	_, err := service.GenerateKey(context.Background(), algorithms.CipherNone)
	assert.True(t, cryptoerr.IsArgument(err))
}

func TestEncryptBufferInPlace(t *testing.T) {
	service := setupEncryptionService(t)
	transformation := algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)
	key := encryptionKey(transformation)
	nonce, err := service.GenerateNonce(context.Background(), transformation)
	require.NoError(t, err)

	plaintext := []byte("buffer payload to protect")
	buffer := bytes.NewBuffer(bytes.Clone(plaintext))

	require.NoError(t, service.EncryptBuffer(context.Background(), transformation, key, nonce, buffer))
	assert.NotEqual(t, plaintext, buffer.Bytes())

	require.NoError(t, service.DecryptBuffer(context.Background(), transformation, key, nonce, buffer))
	assert.Equal(t, plaintext, buffer.Bytes())
}

func TestEncryptStreamToFile(t *testing.T) {
	service := setupEncryptionService(t)
	transformation := algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)
	key := encryptionKey(transformation)
	nonce, err := service.GenerateNonce(context.Background(), transformation)
	require.NoError(t, err)

	plaintext := bytes.Repeat([]byte("stream data "), 100)
	encryptedPath := filepath.Join(t.TempDir(), "payload.enc")

	sink, err := os.Create(encryptedPath)
	require.NoError(t, err)
	err = service.EncryptStream(context.Background(), transformation, key, nonce, bytes.NewReader(plaintext), sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	source, err := os.Open(encryptedPath)
	require.NoError(t, err)
	defer source.Close()

	var decrypted bytes.Buffer
	err = service.DecryptStream(context.Background(), transformation, key, nonce, source, &decrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted.Bytes())
}

func TestEncryptionErrors(t *testing.T) {
	service := setupEncryptionService(t)
	transformation := algorithms.NewTransformationWithMode(algorithms.CipherAES256, algorithms.ModeGCM, algorithms.PaddingNoPad)
	key := encryptionKey(transformation)
	nonce, err := service.GenerateNonce(context.Background(), transformation)
	require.NoError(t, err)

	ciphertext, err := service.Encrypt(context.Background(), transformation, key, nonce, []byte("payload"))
	require.NoError(t, err)

	t.Run("EmptyNonce", func(t *testing.T) {
		_, err := service.Encrypt(context.Background(), transformation, key, nil, []byte("payload"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
		assert.False(t, cryptoerr.IsArgument(err))
	})

	t.Run("WrongKey", func(t *testing.T) {
		wrong := bytes.Clone(key)
		wrong[0] ^= 0xFF
		_, err := service.Decrypt(context.Background(), transformation, wrong, nonce, ciphertext)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})

	t.Run("SentinelAlgorithm", func(t *testing.T) {
		none := algorithms.NewTransformation(algorithms.CipherNone)
		_, err := service.Encrypt(context.Background(), none, key, nonce, []byte("payload"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := service.Encrypt(context.Background(), transformation, nil, nonce, []byte("payload"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("NilBuffer", func(t *testing.T) {
		err := service.EncryptBuffer(context.Background(), transformation, key, nonce, nil)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("NilStreamEndpoints", func(t *testing.T) {
		err := service.EncryptStream(context.Background(), transformation, key, nonce, nil, &bytes.Buffer{})
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))

		err = service.EncryptStream(context.Background(), transformation, key, nonce, bytes.NewReader(nil), nil)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := service.Encrypt(ctx, transformation, key, nonce, []byte("payload"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})
}
