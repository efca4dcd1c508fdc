//go:build unit
// +build unit

package engine

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

func TestSignatureEngineRSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	for _, algorithm := range []algorithms.Signature{algorithms.SignatureRSASHA256, algorithms.SignatureRSASHA384} {
		t.Run(algorithm.CanonicalName(), func(t *testing.T) {
			engine, err := newSignatureEngine(algorithm)
			require.NoError(t, err)

			message := []byte("message to be signed")
			engine.Init()
			_, err = engine.Write(message)
			require.NoError(t, err)
			signature, err := engine.SignFinal(rand.Reader, key)
			require.NoError(t, err)
			require.NotEmpty(t, signature)

			engine.Init()
			_, err = engine.Write(message)
			require.NoError(t, err)
			valid, err := engine.VerifyFinal(&key.PublicKey, signature)
			require.NoError(t, err)
			assert.True(t, valid)

			// A different message must not verify, and the failure is a
			// clean false rather than an error.
			engine.Init()
			_, err = engine.Write([]byte("a different message"))
			require.NoError(t, err)
			valid, err = engine.VerifyFinal(&key.PublicKey, signature)
			require.NoError(t, err)
			assert.False(t, valid)
		})
	}
}

func TestSignatureEngineECDSA(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	engine, err := newSignatureEngine(algorithms.SignatureECDSASHA256)
	require.NoError(t, err)

	message := []byte("message to be signed")
	engine.Init()
	_, err = engine.Write(message)
	require.NoError(t, err)
	signature, err := engine.SignFinal(rand.Reader, key)
	require.NoError(t, err)

	engine.Init()
	_, err = engine.Write(message)
	require.NoError(t, err)
	valid, err := engine.VerifyFinal(&key.PublicKey, signature)
	require.NoError(t, err)
	assert.True(t, valid)

	engine.Init()
	_, err = engine.Write([]byte("tampered"))
	require.NoError(t, err)
	valid, err = engine.VerifyFinal(&key.PublicKey, signature)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestSignatureEngineBadKeyType(t *testing.T) {
	rsaEngine, err := newSignatureEngine(algorithms.SignatureRSASHA256)
	require.NoError(t, err)

	ecdsaKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	rsaEngine.Init()
	_, err = rsaEngine.SignFinal(rand.Reader, ecdsaKey)
	require.Error(t, err)
	assert.True(t, cryptoerr.IsCryptography(err))

	rsaEngine.Init()
	_, err = rsaEngine.VerifyFinal(&ecdsaKey.PublicKey, []byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, cryptoerr.IsCryptography(err))

	_, err = newSignatureEngine(algorithms.SignatureNone)
	require.Error(t, err)
	assert.True(t, cryptoerr.IsCryptography(err))
}
