package values

import (
	"bytes"
	"encoding/hex"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// Seal is an immutable digital signature value tagged with the signature
// algorithm that produced it. Construction and every read make a
// defensive copy.
type Seal struct {
	algorithm algorithms.Signature
	bytes     []byte
}

// emptySeal is the canonical "no signature" value.
var emptySeal = &Seal{algorithm: algorithms.SignatureNone}

// EmptySeal returns the canonical EMPTY seal value.
func EmptySeal() *Seal { return emptySeal }

// NewSeal creates a seal value, copying the input bytes. The byte
// content must be nonzero unless the algorithm is the NONE sentinel,
// which permits only a zero-length placeholder.
func NewSeal(algorithm algorithms.Signature, value []byte) (*Seal, error) {
	if !algorithm.Known() {
		return nil, cryptoerr.NewArgument("unknown signature algorithm id %d", algorithm.ID())
	}
	if algorithm == algorithms.SignatureNone {
		if len(value) != 0 {
			return nil, cryptoerr.NewArgument("sentinel seal permits only a zero-length placeholder, got %d bytes", len(value))
		}
	} else if len(value) == 0 {
		return nil, cryptoerr.NewArgument("seal for %s requires nonzero byte content", algorithm.CanonicalName())
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return &Seal{algorithm: algorithm, bytes: copied}, nil
}

// Algorithm returns the signature algorithm that produced the value.
func (s *Seal) Algorithm() algorithms.Signature { return s.algorithm }

// Bytes returns a defensive copy of the signature bytes.
func (s *Seal) Bytes() []byte {
	copied := make([]byte, len(s.bytes))
	copy(copied, s.bytes)
	return copied
}

// SetBytes always fails with ErrImmutable.
func (s *Seal) SetBytes(_ []byte) error { return ErrImmutable }

// IsEmpty reports whether the value is the EMPTY sentinel.
func (s *Seal) IsEmpty() bool {
	return s.algorithm == algorithms.SignatureNone && len(s.bytes) == 0
}

// Equal reports whether both seals carry the same algorithm id and
// identical byte content.
func (s *Seal) Equal(other *Seal) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.algorithm == other.algorithm && bytes.Equal(s.bytes, other.bytes)
}

// Compare orders seals lexicographically first by algorithm id, then by
// byte content. EmptySeal is the minimum non-nil element; a nil seal
// sorts before everything else.
func (s *Seal) Compare(other *Seal) int {
	switch {
	case s == nil && other == nil:
		return 0
	case s == nil:
		return -1
	case other == nil:
		return 1
	}
	return compareTagged(s.algorithm.ID(), s.bytes, other.algorithm.ID(), other.bytes)
}

func (s *Seal) String() string {
	return s.algorithm.CanonicalName() + ":" + hex.EncodeToString(s.bytes)
}
