// Package engine wraps the platform's native cryptographic primitives
// behind cached, stateful engine handles. It owns the execution-context
// cache, the secure random source with its reseed policy, and the
// mode-specific derivation of cipher initialization parameters.
package engine
