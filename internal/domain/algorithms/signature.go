package algorithms

// Signature identifies a digital signature algorithm: the key algorithm
// plus the digest used to condense the message before signing.
type Signature int

// Signature algorithm descriptors. Ids are stable and never reused.
// RSA descriptors use RSA-PSS, ECDSA descriptors produce ASN.1 encoded
// signatures.
const (
	SignatureNone        Signature = 0
	SignatureRSASHA256   Signature = 1
	SignatureECDSASHA256 Signature = 2
	SignatureRSASHA384   Signature = 3
)

type signatureInfo struct {
	name    string
	keyName string
	digest  Hash
}

var signatureTable = map[Signature]signatureInfo{
	SignatureNone:        {name: "NONE", keyName: "", digest: HashNone},
	SignatureRSASHA256:   {name: "RSA-SHA256", keyName: "RSA", digest: HashSHA256},
	SignatureECDSASHA256: {name: "ECDSA-SHA256", keyName: "ECDSA", digest: HashSHA256},
	SignatureRSASHA384:   {name: "RSA-SHA384", keyName: "RSA", digest: HashSHA384},
}

// ID returns the stable numeric identifier of the signature algorithm.
func (s Signature) ID() int { return int(s) }

// CanonicalName returns the name passed to the native engine factory.
func (s Signature) CanonicalName() string { return signatureTable[s].name }

// BitLength returns the length in bits of the digest condensed before
// signing. Signature output length depends on the key and is not fixed
// by the descriptor.
func (s Signature) BitLength() int { return signatureTable[s].digest.BitLength() }

// ByteLength returns the digest length in bytes.
func (s Signature) ByteLength() int { return signatureTable[s].digest.ByteLength() }

// KeyAlgorithmName returns the name of the key algorithm the signature
// scheme expects, e.g. "RSA" or "ECDSA".
func (s Signature) KeyAlgorithmName() string { return signatureTable[s].keyName }

// Digest returns the hash algorithm used to condense the message.
func (s Signature) Digest() Hash { return signatureTable[s].digest }

// Known reports whether the value is part of the catalog.
func (s Signature) Known() bool {
	_, ok := signatureTable[s]
	return ok
}

// Real reports whether the value identifies an actual signature algorithm.
func (s Signature) Real() bool { return s != SignatureNone && s.Known() }

func (s Signature) String() string { return s.CanonicalName() }
