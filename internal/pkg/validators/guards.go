package validators

import (
	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
)

// Guard clauses applied at the boundary of every public façade
// operation. Violations surface as the argument-error kind before any
// native engine is touched.

// RequireNonNil fails when the value is nil.
func RequireNonNil(name string, value interface{}) error {
	if value == nil {
		return cryptoerr.NewArgument("%s must not be nil", name)
	}
	return nil
}

// RequirePositive fails when the value is zero or negative.
func RequirePositive(name string, value int) error {
	if value <= 0 {
		return cryptoerr.NewArgument("%s must be positive, got %d", name, value)
	}
	return nil
}

// RequireNonEmpty fails when the byte slice is nil or zero-length.
func RequireNonEmpty(name string, value []byte) error {
	if len(value) == 0 {
		return cryptoerr.NewArgument("%s must not be empty", name)
	}
	return nil
}
