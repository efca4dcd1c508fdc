//go:build unit
// +build unit

package engine

import (
	"crypto/hmac"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

func TestMacEngine(t *testing.T) {
	key := []byte("a perfectly ordinary mac key")
	message := []byte("the quick brown fox jumps over the lazy dog")

	t.Run("MatchesReferenceHMAC", func(t *testing.T) {
		engine, err := newMacEngine(algorithms.MacHmacSHA384)
		require.NoError(t, err)

		require.NoError(t, engine.Init(key))
		_, err = engine.Write(message)
		require.NoError(t, err)
		sum, err := engine.Sum()
		require.NoError(t, err)

		reference := hmac.New(sha512.New384, key)
		reference.Write(message)
		assert.Equal(t, reference.Sum(nil), sum)
		assert.Len(t, sum, algorithms.MacHmacSHA384.ByteLength())
	})

	t.Run("ReinitResetsState", func(t *testing.T) {
		engine, err := newMacEngine(algorithms.MacHmacSHA256)
		require.NoError(t, err)

		require.NoError(t, engine.Init(key))
		_, err = engine.Write([]byte("first message"))
		require.NoError(t, err)
		first, err := engine.Sum()
		require.NoError(t, err)

		require.NoError(t, engine.Init(key))
		_, err = engine.Write([]byte("first message"))
		require.NoError(t, err)
		second, err := engine.Sum()
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("DifferentKeysDiffer", func(t *testing.T) {
		engine, err := newMacEngine(algorithms.MacHmacSHA256)
		require.NoError(t, err)

		require.NoError(t, engine.Init(key))
		_, err = engine.Write(message)
		require.NoError(t, err)
		first, err := engine.Sum()
		require.NoError(t, err)

		require.NoError(t, engine.Init([]byte("another key entirely")))
		_, err = engine.Write(message)
		require.NoError(t, err)
		second, err := engine.Sum()
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("SentinelRejected", func(t *testing.T) {
		_, err := newMacEngine(algorithms.MacNone)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsCryptography(err))
	})
}
