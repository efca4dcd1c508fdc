package algorithms

// Spec is the capability shared by every descriptor kind. It exposes the
// stable numeric id, the canonical name handed to the native engine
// factory, and the output size metadata.
type Spec interface {
	// ID returns the stable numeric identifier. Ids are never reused.
	ID() int

	// CanonicalName returns the name passed to the native engine factory.
	CanonicalName() string

	// BitLength returns the primitive's output length in bits.
	BitLength() int

	// ByteLength returns the primitive's output length in bytes.
	ByteLength() int
}

// Hash identifies a message digest algorithm.
type Hash int

// Hash algorithm descriptors. Ids are stable and never reused.
const (
	HashNone    Hash = 0
	HashMD5     Hash = 1
	HashSHA1    Hash = 2
	HashSHA256  Hash = 3
	HashSHA384  Hash = 4
	HashSHA512  Hash = 5
	HashSHA3256 Hash = 6
	HashSHA3512 Hash = 7
)

type hashInfo struct {
	name string
	bits int
}

var hashTable = map[Hash]hashInfo{
	HashNone:    {name: "NONE", bits: 0},
	HashMD5:     {name: "MD5", bits: 128},
	HashSHA1:    {name: "SHA-1", bits: 160},
	HashSHA256:  {name: "SHA-256", bits: 256},
	HashSHA384:  {name: "SHA-384", bits: 384},
	HashSHA512:  {name: "SHA-512", bits: 512},
	HashSHA3256: {name: "SHA3-256", bits: 256},
	HashSHA3512: {name: "SHA3-512", bits: 512},
}

// ID returns the stable numeric identifier of the hash algorithm.
func (h Hash) ID() int { return int(h) }

// CanonicalName returns the name passed to the native engine factory.
func (h Hash) CanonicalName() string { return hashTable[h].name }

// BitLength returns the digest length in bits.
func (h Hash) BitLength() int { return hashTable[h].bits }

// ByteLength returns the digest length in bytes.
func (h Hash) ByteLength() int { return hashTable[h].bits / 8 }

// Known reports whether the value is part of the catalog, including the
// NONE sentinel.
func (h Hash) Known() bool {
	_, ok := hashTable[h]
	return ok
}

// Real reports whether the value identifies an actual digest algorithm,
// i.e. it is known and not the NONE sentinel.
func (h Hash) Real() bool { return h != HashNone && h.Known() }

func (h Hash) String() string { return h.CanonicalName() }
