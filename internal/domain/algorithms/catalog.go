package algorithms

// Catalog lookups. Each lookup returns ok=false for an unknown id or
// name rather than failing; the NONE sentinel (id 0) is a valid lookup
// result and must be rejected by operations that need a real primitive.

// HashByID returns the hash descriptor with the given id.
func HashByID(id int) (Hash, bool) {
	h := Hash(id)
	return h, h.Known()
}

// HashByName returns the hash descriptor with the given canonical name.
func HashByName(name string) (Hash, bool) {
	for h, info := range hashTable {
		if info.name == name {
			return h, true
		}
	}
	return HashNone, false
}

// CipherByID returns the cipher descriptor with the given id.
func CipherByID(id int) (Cipher, bool) {
	c := Cipher(id)
	return c, c.Known()
}

// CipherByName returns the cipher descriptor with the given canonical
// name and key length in bits. AES entries share the canonical name
// "AES" and differ only in key length.
func CipherByName(name string, keyBits int) (Cipher, bool) {
	for c, info := range cipherTable {
		if info.name == name && info.bits == keyBits {
			return c, true
		}
	}
	return CipherNone, false
}

// CipherByKeyAlgorithm returns the cipher descriptor whose key
// algorithm name and key length match, e.g. ("ChaCha20", 256) for
// ChaCha20-Poly1305.
func CipherByKeyAlgorithm(keyName string, keyBits int) (Cipher, bool) {
	for c, info := range cipherTable {
		if info.keyName == keyName && info.bits == keyBits {
			return c, true
		}
	}
	return CipherNone, false
}

// MacByID returns the MAC descriptor with the given id.
func MacByID(id int) (Mac, bool) {
	m := Mac(id)
	return m, m.Known()
}

// MacByName returns the MAC descriptor with the given canonical name.
func MacByName(name string) (Mac, bool) {
	for m, info := range macTable {
		if info.name == name {
			return m, true
		}
	}
	return MacNone, false
}

// SignatureByID returns the signature descriptor with the given id.
func SignatureByID(id int) (Signature, bool) {
	s := Signature(id)
	return s, s.Known()
}

// SignatureByName returns the signature descriptor with the given
// canonical name.
func SignatureByName(name string) (Signature, bool) {
	for s, info := range signatureTable {
		if info.name == name {
			return s, true
		}
	}
	return SignatureNone, false
}
