// Package providers defines the contracts of the orchestration layer:
// the digest, MAC, signature and encryption providers that sequence
// "acquire engine, feed bytes, finalize, wrap result", and the façade
// that exposes them synchronously and asynchronously.
package providers
