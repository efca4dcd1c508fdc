// Package cryptoerr defines the two error kinds exposed by the
// cryptographic façade: engine-layer failures and argument-contract
// violations. Callers classify errors with IsCryptography and IsArgument
// rather than inspecting messages.
package cryptoerr
