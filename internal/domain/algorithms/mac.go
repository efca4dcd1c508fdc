package algorithms

// Mac identifies a message-authentication-code algorithm. Every real MAC
// descriptor layers an HMAC construction over an underlying digest
// algorithm; results produced with a MAC are tagged with that underlying
// digest descriptor, not the MAC descriptor itself.
type Mac int

// MAC algorithm descriptors. Ids are stable and never reused.
const (
	MacNone       Mac = 0
	MacHmacSHA256 Mac = 1
	MacHmacSHA384 Mac = 2
	MacHmacSHA512 Mac = 3
)

type macInfo struct {
	name       string
	underlying Hash
}

var macTable = map[Mac]macInfo{
	MacNone:       {name: "NONE", underlying: HashNone},
	MacHmacSHA256: {name: "HMAC-SHA256", underlying: HashSHA256},
	MacHmacSHA384: {name: "HMAC-SHA384", underlying: HashSHA384},
	MacHmacSHA512: {name: "HMAC-SHA512", underlying: HashSHA512},
}

// ID returns the stable numeric identifier of the MAC algorithm.
func (m Mac) ID() int { return int(m) }

// CanonicalName returns the name passed to the native engine factory.
func (m Mac) CanonicalName() string { return macTable[m].name }

// BitLength returns the MAC output length in bits, which equals the
// underlying digest length.
func (m Mac) BitLength() int { return macTable[m].underlying.BitLength() }

// ByteLength returns the MAC output length in bytes.
func (m Mac) ByteLength() int { return macTable[m].underlying.ByteLength() }

// Underlying returns the digest algorithm the HMAC construction is
// layered over.
func (m Mac) Underlying() Hash { return macTable[m].underlying }

// Known reports whether the value is part of the catalog.
func (m Mac) Known() bool {
	_, ok := macTable[m]
	return ok
}

// Real reports whether the value identifies an actual MAC algorithm.
func (m Mac) Real() bool { return m != MacNone && m.Known() }

func (m Mac) String() string { return m.CanonicalName() }
