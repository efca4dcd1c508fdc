//go:build unit
// +build unit

package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

func TestGuards(t *testing.T) {
	assert.NoError(t, RequireNonNil("value", struct{}{}))
	err := RequireNonNil("value", nil)
	assert.True(t, cryptoerr.IsArgument(err))

	assert.NoError(t, RequirePositive("count", 1))
	assert.True(t, cryptoerr.IsArgument(RequirePositive("count", 0)))
	assert.True(t, cryptoerr.IsArgument(RequirePositive("count", -5)))

	assert.NoError(t, RequireNonEmpty("key", []byte{1}))
	assert.True(t, cryptoerr.IsArgument(RequireNonEmpty("key", nil)))
	assert.True(t, cryptoerr.IsArgument(RequireNonEmpty("key", []byte{})))
}

type keySpec struct {
	Algorithm string `validate:"required"`
	KeySize   uint   `validate:"required,keySizeValidation"`
}

func TestKeySizeValidation(t *testing.T) {
	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("keySizeValidation", KeySizeValidation))

	valid := []keySpec{
		{"AES", 128}, {"AES", 192}, {"AES", 256},
		{"ChaCha20", 256},
		{"RSA", 2048}, {"RSA", 3072}, {"RSA", 4096},
		{"ECDSA", 224}, {"ECDSA", 256}, {"ECDSA", 384}, {"ECDSA", 521},
	}
	for _, spec := range valid {
		assert.NoError(t, validate.Struct(&spec), "%s-%d", spec.Algorithm, spec.KeySize)
	}

	invalid := []keySpec{
		{"AES", 200},
		{"ChaCha20", 128},
		{"RSA", 1024},
		{"ECDSA", 512},
		{"Twofish", 256},
	}
	for _, spec := range invalid {
		assert.Error(t, validate.Struct(&spec), "%s-%d", spec.Algorithm, spec.KeySize)
	}
}
