// Package algorithms defines the immutable descriptor catalog for every
// cryptographic primitive the façade can select: hash, cipher, MAC and
// signature algorithms, plus the cipher transformation triple
// (algorithm, mode, padding). Descriptors map a stable numeric id to the
// canonical name and size metadata the native engine layer needs.
//
// Each descriptor kind reserves id 0 for a NONE sentinel representing
// "no algorithm selected"; operations that require a real primitive
// reject the sentinel. The id-to-descriptor mapping is bijective and
// fixed at process start.
package algorithms
