package cryptoerr

import (
	"github.com/cockroachdb/errors"
)

// The façade exposes exactly two error kinds. Every failure originating
// at the native engine layer (missing algorithm, bad key, tag verification
// failure, I/O failure while streaming) surfaces as ErrCryptography so
// callers cannot distinguish the underlying cause. Precondition violations
// on public operations surface as ErrArgument before any engine is touched.
var (
	ErrCryptography = errors.New("cryptography operation failed")
	ErrArgument     = errors.New("invalid argument")
)

// NewCryptography creates a CryptographyError with the given message.
func NewCryptography(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrCryptography)
}

// WrapCryptography wraps an engine-layer failure into the single
// externally visible CryptographyError kind.
func WrapCryptography(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Mark(errors.Wrapf(err, format, args...), ErrCryptography)
}

// NewArgument creates an argument-contract violation error.
func NewArgument(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrArgument)
}

// IsCryptography reports whether err is of the CryptographyError kind.
func IsCryptography(err error) bool {
	return errors.Is(err, ErrCryptography)
}

// IsArgument reports whether err is of the argument-error kind.
func IsArgument(err error) bool {
	return errors.Is(err, ErrArgument)
}
