package values

import (
	"bytes"
	"encoding/hex"

	"github.com/cockroachdb/errors"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// ErrImmutable is returned by every mutating operation on a frozen value.
var ErrImmutable = errors.New("unsupported operation: value is immutable")

// Digest is a mutable digest value: the raw output bytes of a hash (or
// HMAC) computation tagged with the algorithm that produced them. The
// owner may replace the bytes after construction; length is validated on
// every mutation. For an immutable flavor see FrozenDigest.
type Digest struct {
	algorithm algorithms.Hash
	bytes     []byte
}

// NewDigest creates a mutable digest value. The byte length must equal
// the algorithm's output length; the NONE sentinel permits a zero-length
// placeholder only.
func NewDigest(algorithm algorithms.Hash, value []byte) (*Digest, error) {
	if err := checkDigestBytes(algorithm, value); err != nil {
		return nil, err
	}
	return &Digest{algorithm: algorithm, bytes: value}, nil
}

// Algorithm returns the hash algorithm that produced the value.
func (d *Digest) Algorithm() algorithms.Hash { return d.algorithm }

// Bytes returns the digest bytes. The mutable flavor exposes its backing
// slice; callers that need isolation should Freeze first.
func (d *Digest) Bytes() []byte { return d.bytes }

// SetBytes replaces the digest bytes after validating the length against
// the algorithm's output length.
func (d *Digest) SetBytes(value []byte) error {
	if err := checkDigestBytes(d.algorithm, value); err != nil {
		return err
	}
	d.bytes = value
	return nil
}

// Freeze converts the mutable digest into an immutable FrozenDigest,
// copying the current bytes. The conversion is one-way.
func (d *Digest) Freeze() *FrozenDigest {
	return newFrozen(d.algorithm, d.bytes)
}

// Equal reports whether both digests carry the same algorithm id and
// identical byte content.
func (d *Digest) Equal(other *Digest) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.algorithm == other.algorithm && bytes.Equal(d.bytes, other.bytes)
}

// Compare orders digests lexicographically first by algorithm id, then
// by byte content. A nil digest sorts before everything else.
func (d *Digest) Compare(other *Digest) int {
	switch {
	case d == nil && other == nil:
		return 0
	case d == nil:
		return -1
	case other == nil:
		return 1
	}
	return compareTagged(d.algorithm.ID(), d.bytes, other.algorithm.ID(), other.bytes)
}

func (d *Digest) String() string {
	return d.algorithm.CanonicalName() + ":" + hex.EncodeToString(d.bytes)
}

func checkDigestBytes(algorithm algorithms.Hash, value []byte) error {
	if !algorithm.Known() {
		return cryptoerr.NewArgument("unknown hash algorithm id %d", algorithm.ID())
	}
	if algorithm == algorithms.HashNone {
		if len(value) != 0 {
			return cryptoerr.NewArgument("sentinel digest permits only a zero-length placeholder, got %d bytes", len(value))
		}
		return nil
	}
	if len(value) != algorithm.ByteLength() {
		return cryptoerr.NewArgument("digest length mismatch for %s: want %d bytes, got %d",
			algorithm.CanonicalName(), algorithm.ByteLength(), len(value))
	}
	return nil
}

func compareTagged(idA int, bytesA []byte, idB int, bytesB []byte) int {
	if idA != idB {
		if idA < idB {
			return -1
		}
		return 1
	}
	return bytes.Compare(bytesA, bytesB)
}
