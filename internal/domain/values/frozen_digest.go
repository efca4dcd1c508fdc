package values

import (
	"bytes"
	"encoding/hex"

	"github.com/servercurio/fabric-sub000/internal/domain/algorithms"
)

// FrozenDigest is the immutable digest value. Construction copies the
// input, every read returns a defensive copy, and the single mutating
// entry point fails with ErrImmutable. FrozenDigest is safe to share
// across goroutines.
type FrozenDigest struct {
	algorithm algorithms.Hash
	bytes     []byte
}

// emptyDigest is the canonical "no digest computed" value: sentinel
// algorithm, zero-length placeholder. It is the minimum element of the
// digest ordering.
var emptyDigest = &FrozenDigest{algorithm: algorithms.HashNone}

// EmptyDigest returns the canonical EMPTY digest value.
func EmptyDigest() *FrozenDigest { return emptyDigest }

// NewFrozenDigest creates an immutable digest value, copying the input
// bytes. Length validation matches NewDigest.
func NewFrozenDigest(algorithm algorithms.Hash, value []byte) (*FrozenDigest, error) {
	if err := checkDigestBytes(algorithm, value); err != nil {
		return nil, err
	}
	return newFrozen(algorithm, value), nil
}

func newFrozen(algorithm algorithms.Hash, value []byte) *FrozenDigest {
	copied := make([]byte, len(value))
	copy(copied, value)
	return &FrozenDigest{algorithm: algorithm, bytes: copied}
}

// Algorithm returns the hash algorithm that produced the value.
func (d *FrozenDigest) Algorithm() algorithms.Hash { return d.algorithm }

// Bytes returns a defensive copy of the digest bytes; mutating the
// returned slice does not affect the stored value.
func (d *FrozenDigest) Bytes() []byte {
	copied := make([]byte, len(d.bytes))
	copy(copied, d.bytes)
	return copied
}

// SetBytes always fails with ErrImmutable.
func (d *FrozenDigest) SetBytes(_ []byte) error { return ErrImmutable }

// Thaw converts the frozen digest back into a mutable Digest holding a
// copy of the bytes. The frozen value is unaffected.
func (d *FrozenDigest) Thaw() *Digest {
	return &Digest{algorithm: d.algorithm, bytes: d.Bytes()}
}

// IsEmpty reports whether the value is the EMPTY sentinel: the NONE
// algorithm with a zero-length placeholder.
func (d *FrozenDigest) IsEmpty() bool {
	return d.algorithm == algorithms.HashNone && len(d.bytes) == 0
}

// Equal reports whether both digests carry the same algorithm id and
// identical byte content.
func (d *FrozenDigest) Equal(other *FrozenDigest) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.algorithm == other.algorithm && bytes.Equal(d.bytes, other.bytes)
}

// Compare orders digests lexicographically first by algorithm id, then
// by byte content. EmptyDigest is the minimum non-nil element; a nil
// digest sorts before everything else.
func (d *FrozenDigest) Compare(other *FrozenDigest) int {
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

func (d *FrozenDigest) String() string {
	return d.algorithm.CanonicalName() + ":" + hex.EncodeToString(d.bytes)
}
