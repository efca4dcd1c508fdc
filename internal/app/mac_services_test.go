//go:build unit
// +build unit

package app

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/domain/providers"
	"github.com/servercurio/fabric-sub000/internal/infrastructure/engine"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	pkgTesting "github.com/servercurio/fabric-sub000/internal/pkg/testing"
)

func setupMacService(t *testing.T) providers.MacProvider {
	t.Helper()
	pool, err := engine.NewContextPool(2, engine.DefaultReseedInterval)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	service, err := NewMacService(pool, pkgTesting.SetupTestLogger(t))
	require.NoError(t, err)
	return service
}

func TestAuthenticate(t *testing.T) {
	service := setupMacService(t)
	key := []byte("an authentication key")
	message := []byte("message under authentication")

	t.Run("MatchesReferenceHMAC", func(t *testing.T) {
		mac, err := service.Authenticate(context.Background(), algorithms.MacHmacSHA384, key, message)
		require.NoError(t, err)

		reference := hmac.New(sha512.New384, key)
		reference.Write(message)
		assert.Equal(t, reference.Sum(nil), mac.Bytes())
	})

	t.Run("TaggedWithUnderlyingDigest", func(t *testing.T) {
		mac, err := service.Authenticate(context.Background(), algorithms.MacHmacSHA512, key, message)
		require.NoError(t, err)
		assert.Equal(t, algorithms.HashSHA512, mac.Algorithm())
		assert.Len(t, mac.Bytes(), algorithms.HashSHA512.ByteLength())
	})

	t.Run("KeySensitivity", func(t *testing.T) {
		first, err := service.Authenticate(context.Background(), algorithms.MacHmacSHA256, key, message)
		require.NoError(t, err)
		second, err := service.Authenticate(context.Background(), algorithms.MacHmacSHA256, []byte("other key"), message)
		require.NoError(t, err)
		assert.False(t, first.Equal(second))
	})
}

func TestAuthenticateInputShapes(t *testing.T) {
	service := setupMacService(t)
	key := []byte("an authentication key")
	message := []byte("identical content through every shape")

	expected, err := service.Authenticate(context.Background(), algorithms.MacHmacSHA384, key, message)
	require.NoError(t, err)

	t.Run("Buffer", func(t *testing.T) {
		buffer := bytes.NewBuffer(bytes.Clone(message))
		mac, err := service.AuthenticateBuffer(context.Background(), algorithms.MacHmacSHA384, key, buffer)
		require.NoError(t, err)
		assert.True(t, expected.Equal(mac))
		assert.Zero(t, buffer.Len())
	})

	t.Run("Stream", func(t *testing.T) {
		mac, err := service.AuthenticateStream(context.Background(), algorithms.MacHmacSHA384, key, strings.NewReader(string(message)))
		require.NoError(t, err)
		assert.True(t, expected.Equal(mac))
	})
}

func TestAuthenticateErrors(t *testing.T) {
	service := setupMacService(t)

	t.Run("SentinelAlgorithm", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), algorithms.MacNone, []byte("key"), []byte("data"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("EmptyKey", func(t *testing.T) {
		_, err := service.Authenticate(context.Background(), algorithms.MacHmacSHA256, nil, []byte("data"))
		require.Error(t, err)
	})

	t.Run("NilReader", func(t *testing.T) {
		_, err := service.AuthenticateStream(context.Background(), algorithms.MacHmacSHA256, []byte("key"), nil)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("CancelledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := service.Authenticate(ctx, algorithms.MacHmacSHA256, []byte("key"), []byte("data"))
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})
}
