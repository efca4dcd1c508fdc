package algorithms

// Mode identifies a block cipher mode of operation. The zero value means
// "no mode selected": the transformation degrades to algorithm-name-only
// and the engine default applies.
type Mode string

// Supported cipher modes.
const (
	ModeNone Mode = ""
	ModeGCM  Mode = "GCM"
	ModeCTR  Mode = "CTR"
	ModeCBC  Mode = "CBC"
)

// Padding identifies a block cipher padding scheme. The zero value means
// "no padding selected" and the engine default applies.
type Padding string

// Supported padding schemes.
const (
	PaddingNone  Padding = ""
	PaddingNoPad Padding = "NoPadding"
	PaddingPKCS5 Padding = "PKCS5Padding"
)

// Transformation is the (algorithm, mode, padding) triple that fully
// configures a symmetric cipher engine. Mode and Padding may be left at
// their zero values, in which case the engine's native defaults apply.
// Transformations are mutable while being built by the caller, compare
// structurally and are passed by value into provider calls.
type Transformation struct {
	Algorithm Cipher
	Mode      Mode
	Padding   Padding
}

// NewTransformation creates a transformation selecting only the cipher
// algorithm, leaving mode and padding at the engine defaults.
func NewTransformation(algorithm Cipher) Transformation {
	return Transformation{Algorithm: algorithm}
}

// NewTransformationWithMode creates a fully specified transformation.
func NewTransformationWithMode(algorithm Cipher, mode Mode, padding Padding) Transformation {
	return Transformation{Algorithm: algorithm, Mode: mode, Padding: padding}
}

// String renders the transformation the way the native engine factory
// names it: "ALG/MODE/PADDING", degrading to "ALG/MODE" or "ALG" when
// padding or mode are absent.
func (t Transformation) String() string {
	name := t.Algorithm.CanonicalName()
	if t.Mode == ModeNone {
		return name
	}
	name += "/" + string(t.Mode)
	if t.Padding == PaddingNone {
		return name
	}
	return name + "/" + string(t.Padding)
}

// AEAD reports whether the transformation selects an authenticated
// encryption mode with a 96-bit nonce and 128-bit tag.
func (t Transformation) AEAD() bool {
	return t.Mode == ModeGCM || t.Algorithm == CipherChaCha20
}
