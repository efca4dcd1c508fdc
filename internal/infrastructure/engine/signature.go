package engine

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"hash"
	"io"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// SignatureEngine is the stateful engine handle for one signature
// descriptor. It condenses the message with the descriptor's digest and
// signs or verifies the condensed value with the caller's key.
type SignatureEngine struct {
	algorithm algorithms.Signature
	digest    hash.Hash
}

func newSignatureEngine(algorithm algorithms.Signature) (*SignatureEngine, error) {
	if !algorithm.Real() {
		return nil, cryptoerr.NewCryptography("no engine for signature algorithm %q (id %d)",
			algorithm.CanonicalName(), algorithm.ID())
	}
	digest, err := newDigestEngine(algorithm.Digest())
	if err != nil {
		return nil, err
	}
	return &SignatureEngine{algorithm: algorithm, digest: digest}, nil
}

// Algorithm returns the signature descriptor the engine was built for.
func (e *SignatureEngine) Algorithm() algorithms.Signature { return e.algorithm }

// Init discards any state from a previous operation.
func (e *SignatureEngine) Init() { e.digest.Reset() }

// Write feeds message bytes into the engine.
func (e *SignatureEngine) Write(data []byte) (int, error) {
	return e.digest.Write(data)
}

// SignFinal finalizes the digest and signs it with the private key,
// drawing randomness from the given source. RSA descriptors use
// RSA-PSS, ECDSA descriptors produce ASN.1 encoded signatures.
func (e *SignatureEngine) SignFinal(random io.Reader, key crypto.PrivateKey) ([]byte, error) {
	condensed := e.digest.Sum(nil)

	switch e.algorithm.KeyAlgorithmName() {
	case "RSA":
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, cryptoerr.NewCryptography("bad key type for %s", e.algorithm.CanonicalName())
		}
		ch, err := cryptoHash(e.algorithm.Digest())
		if err != nil {
			return nil, err
		}
		signature, err := rsa.SignPSS(random, rsaKey, ch, condensed, nil)
		if err != nil {
			return nil, cryptoerr.WrapCryptography(err, "RSA signing failed")
		}
		return signature, nil
	case "ECDSA":
		ecdsaKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, cryptoerr.NewCryptography("bad key type for %s", e.algorithm.CanonicalName())
		}
		signature, err := ecdsa.SignASN1(random, ecdsaKey, condensed)
		if err != nil {
			return nil, cryptoerr.WrapCryptography(err, "ECDSA signing failed")
		}
		return signature, nil
	default:
		return nil, cryptoerr.NewCryptography("no signing engine for %s", e.algorithm.CanonicalName())
	}
}

// VerifyFinal finalizes the digest and checks the signature with the
// public key. A well-formed but non-matching signature yields
// (false, nil); engine failures yield an error.
func (e *SignatureEngine) VerifyFinal(key crypto.PublicKey, signature []byte) (bool, error) {
	condensed := e.digest.Sum(nil)

	switch e.algorithm.KeyAlgorithmName() {
	case "RSA":
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return false, cryptoerr.NewCryptography("bad key type for %s", e.algorithm.CanonicalName())
		}
		ch, err := cryptoHash(e.algorithm.Digest())
		if err != nil {
			return false, err
		}
		if err := rsa.VerifyPSS(rsaKey, ch, condensed, signature, nil); err != nil {
			return false, nil
		}
		return true, nil
	case "ECDSA":
		ecdsaKey, ok := key.(*ecdsa.PublicKey)
		if !ok {
			return false, cryptoerr.NewCryptography("bad key type for %s", e.algorithm.CanonicalName())
		}
		return ecdsa.VerifyASN1(ecdsaKey, condensed, signature), nil
	default:
		return false, cryptoerr.NewCryptography("no verification engine for %s", e.algorithm.CanonicalName())
	}
}
