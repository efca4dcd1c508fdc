//go:build unit
// +build unit

package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

func TestSealConstruction(t *testing.T) {
	t.Run("CopiesInput", func(t *testing.T) {
		source := []byte{0xDE, 0xAD, 0xBE, 0xEF}
		seal, err := NewSeal(algorithms.SignatureRSASHA256, source)
		require.NoError(t, err)

		source[0] = 0x00
		assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, seal.Bytes())
		assert.Equal(t, algorithms.SignatureRSASHA256, seal.Algorithm())
	})

	t.Run("EmptyContentRejectedForRealAlgorithm", func(t *testing.T) {
		_, err := NewSeal(algorithms.SignatureECDSASHA256, nil)
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("SentinelPermitsOnlyPlaceholder", func(t *testing.T) {
		seal, err := NewSeal(algorithms.SignatureNone, nil)
		require.NoError(t, err)
		assert.True(t, seal.IsEmpty())

		_, err = NewSeal(algorithms.SignatureNone, []byte{1})
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})

	t.Run("UnknownAlgorithmRejected", func(t *testing.T) {
		_, err := NewSeal(algorithms.Signature(42), []byte{1})
		require.Error(t, err)
		assert.True(t, cryptoerr.IsArgument(err))
	})
}

func TestSealImmutability(t *testing.T) {
	seal, err := NewSeal(algorithms.SignatureRSASHA256, []byte{1, 2, 3})
	require.NoError(t, err)

	assert.ErrorIs(t, seal.SetBytes([]byte{9}), ErrImmutable)

	leaked := seal.Bytes()
	leaked[0] = 0xFF
	assert.Equal(t, []byte{1, 2, 3}, seal.Bytes())
}

func TestSealOrdering(t *testing.T) {
	rsa, err := NewSeal(algorithms.SignatureRSASHA256, []byte{1, 2, 3})
	require.NoError(t, err)
	rsaLater, err := NewSeal(algorithms.SignatureRSASHA256, []byte{9})
	require.NoError(t, err)
	ecdsa, err := NewSeal(algorithms.SignatureECDSASHA256, []byte{0})
	require.NoError(t, err)

	assert.Negative(t, EmptySeal().Compare(rsa))
	assert.Positive(t, rsa.Compare(EmptySeal()))
	assert.Zero(t, EmptySeal().Compare(EmptySeal()))

	assert.Negative(t, rsa.Compare(ecdsa))
	assert.Negative(t, rsa.Compare(rsaLater))
	assert.Positive(t, rsa.Compare(nil))

	same, err := NewSeal(algorithms.SignatureRSASHA256, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.True(t, rsa.Equal(same))
	assert.Zero(t, rsa.Compare(same))
	assert.False(t, rsa.Equal(ecdsa))
}
