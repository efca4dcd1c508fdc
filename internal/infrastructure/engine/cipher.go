package engine

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// CipherEngine is the engine handle for one cipher transformation. It
// holds no keyed state: keys and parameters arrive with every call, so
// caching a handle per execution context amortizes only the
// transformation lookup and never leaks key material between
// operations. It must not be used by two operations at once.
type CipherEngine struct {
	transformation algorithms.Transformation
}

func newCipherEngine(transformation algorithms.Transformation) (*CipherEngine, error) {
	if !transformation.Algorithm.Real() {
		return nil, cryptoerr.NewCryptography("no engine for cipher algorithm %q (id %d)",
			transformation.Algorithm.CanonicalName(), transformation.Algorithm.ID())
	}
	return &CipherEngine{transformation: transformation}, nil
}

// Transformation returns the transformation the engine was built for.
func (e *CipherEngine) Transformation() algorithms.Transformation { return e.transformation }

// BlockSize returns the engine's native block size. AEAD-only ciphers
// report their nonce size since they have no block-chaining concept.
func (e *CipherEngine) BlockSize() int {
	if e.transformation.Algorithm == algorithms.CipherChaCha20 {
		return AEADNonceSize
	}
	return aes.BlockSize
}

// Encrypt keys the engine with the key and derived parameters and
// encrypts the plaintext in one pass.
func (e *CipherEngine) Encrypt(key []byte, params Params, plaintext []byte) ([]byte, error) {
	return e.run(key, params, plaintext, true)
}

// Decrypt reverses Encrypt. Tag verification failures, truncated
// ciphertexts and bad keys all surface as the same cryptography error
// kind so this layer cannot be used as an error oracle.
func (e *CipherEngine) Decrypt(key []byte, params Params, ciphertext []byte) ([]byte, error) {
	return e.run(key, params, ciphertext, false)
}

func (e *CipherEngine) run(key []byte, params Params, input []byte, encrypt bool) ([]byte, error) {
	t := e.transformation

	if t.AEAD() {
		return e.runAEAD(key, params, input, encrypt)
	}

	switch t.Mode {
	case algorithms.ModeCTR:
		return e.runCTR(key, params, input)
	case algorithms.ModeCBC, algorithms.ModeNone:
		// The engine default for a mode-less AES transformation is
		// CBC with PKCS5 padding.
		return e.runCBC(key, params, input, encrypt)
	default:
		return nil, cryptoerr.NewCryptography("no engine for cipher mode %q", t.Mode)
	}
}

func (e *CipherEngine) runAEAD(key []byte, params Params, input []byte, encrypt bool) ([]byte, error) {
	aead, err := newAEADEngine(e.transformation, key)
	if err != nil {
		return nil, err
	}
	if params.TagBits != AEADTagBits {
		return nil, cryptoerr.NewCryptography("tag length mismatch: want %d bits, got %d",
			AEADTagBits, params.TagBits)
	}

	if encrypt {
		return aead.Seal(nil, params.IV, input, nil), nil
	}
	plaintext, err := aead.Open(nil, params.IV, input, nil)
	if err != nil {
		return nil, cryptoerr.WrapCryptography(err, "authenticated decryption failed")
	}
	return plaintext, nil
}

// runCTR applies the counter-mode keystream; encryption and decryption
// are the same operation.
func (e *CipherEngine) runCTR(key []byte, params Params, input []byte) ([]byte, error) {
	block, err := newBlockEngine(e.transformation.Algorithm, key)
	if err != nil {
		return nil, err
	}
	if len(params.IV) != block.BlockSize() {
		return nil, cryptoerr.NewCryptography("IV length mismatch for CTR: want %d bytes, got %d",
			block.BlockSize(), len(params.IV))
	}

	output := make([]byte, len(input))
	cipher.NewCTR(block, params.IV).XORKeyStream(output, input)
	return output, nil
}

func (e *CipherEngine) runCBC(key []byte, params Params, input []byte, encrypt bool) ([]byte, error) {
	block, err := newBlockEngine(e.transformation.Algorithm, key)
	if err != nil {
		return nil, err
	}
	blockSize := block.BlockSize()
	if len(params.IV) != blockSize {
		return nil, cryptoerr.NewCryptography("IV length mismatch for CBC: want %d bytes, got %d",
			blockSize, len(params.IV))
	}

	padded := e.transformation.Padding != algorithms.PaddingNoPad

	if encrypt {
		data := input
		if padded {
			data = padPKCS5(input, blockSize)
		} else if len(input)%blockSize != 0 {
			return nil, cryptoerr.NewCryptography("plaintext length %d is not a multiple of the block size %d",
				len(input), blockSize)
		}
		output := make([]byte, len(data))
		cipher.NewCBCEncrypter(block, params.IV).CryptBlocks(output, data)
		return output, nil
	}

	if len(input) == 0 || len(input)%blockSize != 0 {
		return nil, cryptoerr.NewCryptography("ciphertext length %d is not a multiple of the block size %d",
			len(input), blockSize)
	}
	output := make([]byte, len(input))
	cipher.NewCBCDecrypter(block, params.IV).CryptBlocks(output, input)
	if padded {
		unpadded, err := unpadPKCS5(output, blockSize)
		if err != nil {
			return nil, err
		}
		return unpadded, nil
	}
	return output, nil
}

func padPKCS5(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func unpadPKCS5(data []byte, blockSize int) ([]byte, error) {
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, cryptoerr.NewCryptography("malformed padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, cryptoerr.NewCryptography("malformed padding")
		}
	}
	return data[:len(data)-padding], nil
}
