package algorithms

// Cipher identifies a symmetric cipher algorithm together with its key
// length. BitLength for a cipher descriptor is the key length.
type Cipher int

// Cipher algorithm descriptors. Ids are stable and never reused.
const (
	CipherNone     Cipher = 0
	CipherAES128   Cipher = 1
	CipherAES192   Cipher = 2
	CipherAES256   Cipher = 3
	CipherChaCha20 Cipher = 4
)

type cipherInfo struct {
	name    string
	keyName string
	bits    int
}

var cipherTable = map[Cipher]cipherInfo{
	CipherNone:     {name: "NONE", keyName: "", bits: 0},
	CipherAES128:   {name: "AES", keyName: "AES", bits: 128},
	CipherAES192:   {name: "AES", keyName: "AES", bits: 192},
	CipherAES256:   {name: "AES", keyName: "AES", bits: 256},
	CipherChaCha20: {name: "ChaCha20-Poly1305", keyName: "ChaCha20", bits: 256},
}

// ID returns the stable numeric identifier of the cipher algorithm.
func (c Cipher) ID() int { return int(c) }

// CanonicalName returns the name passed to the native engine factory.
func (c Cipher) CanonicalName() string { return cipherTable[c].name }

// BitLength returns the key length in bits.
func (c Cipher) BitLength() int { return cipherTable[c].bits }

// ByteLength returns the key length in bytes.
func (c Cipher) ByteLength() int { return cipherTable[c].bits / 8 }

// KeyAlgorithmName returns the name of the key algorithm the cipher
// expects, e.g. "AES".
func (c Cipher) KeyAlgorithmName() string { return cipherTable[c].keyName }

// Known reports whether the value is part of the catalog.
func (c Cipher) Known() bool {
	_, ok := cipherTable[c]
	return ok
}

// Real reports whether the value identifies an actual cipher algorithm.
func (c Cipher) Real() bool { return c != CipherNone && c.Known() }

func (c Cipher) String() string { return c.CanonicalName() }
