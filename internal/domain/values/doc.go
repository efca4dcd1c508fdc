// Package values defines the byte-array value types produced by the
// cryptographic façade: Digest (mutable), FrozenDigest (immutable) and
// Seal (immutable signature value). Each value is tagged with the
// algorithm descriptor that produced it and participates in a total
// order with the EMPTY sentinel as minimum element.
package values
