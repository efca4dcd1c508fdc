package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"io"

	"go.uber.org/atomic"
	"golang.org/x/crypto/hkdf"

	"github.com/servercurio/fabric-sub000/internal/pkg/cryptoerr"
	"github.com/servercurio/fabric-sub000/internal/pkg/validators"
)

// DefaultReseedInterval is the number of draws permitted from one
// internal RNG state before fresh entropy is mixed in.
const DefaultReseedInterval = 100

const seedLength = 32

// SecureRandom is a deterministic-random-bit-generator handle: an
// HKDF-SHA256 output stream keyed with platform entropy, paired with a
// draw counter. Once the counter reaches the reseed interval the next
// draw forces a reseed with fresh entropy and resets the counter. The
// handle is confined to one execution context and is not safe for
// concurrent use.
type SecureRandom struct {
	interval int64
	uses     *atomic.Int64
	reseeds  *atomic.Int64
	stream   io.Reader
}

// NewSecureRandom constructs and seeds a secure random handle.
// Construction fails with the cryptography error kind if the platform
// entropy source is unavailable; there is no fallback to a weaker RNG.
func NewSecureRandom(interval int) (*SecureRandom, error) {
	if err := validators.RequirePositive("reseed interval", interval); err != nil {
		return nil, err
	}

	r := &SecureRandom{
		interval: int64(interval),
		uses:     atomic.NewInt64(0),
		reseeds:  atomic.NewInt64(0),
	}
	if err := r.reseed(); err != nil {
		return nil, err
	}
	return r, nil
}

// Read fills value with random bytes, counting one draw. The draw after
// the counter reaches the reseed interval triggers a reseed first.
func (r *SecureRandom) Read(value []byte) (int, error) {
	if r.uses.Load() >= r.interval {
		if err := r.reseed(); err != nil {
			return 0, err
		}
		r.uses.Store(0)
	}
	r.uses.Inc()

	n, err := io.ReadFull(r.stream, value)
	if err != nil {
		return n, cryptoerr.WrapCryptography(err, "random stream exhausted")
	}
	return n, nil
}

// Uses returns the number of draws since the last reseed.
func (r *SecureRandom) Uses() int64 { return r.uses.Load() }

// Reseeds returns the total number of seedings, including the initial
// one at construction.
func (r *SecureRandom) Reseeds() int64 { return r.reseeds.Load() }

func (r *SecureRandom) reseed() error {
	seed := make([]byte, seedLength)
	if _, err := rand.Read(seed); err != nil {
		return cryptoerr.WrapCryptography(err, "platform entropy source unavailable")
	}
	r.stream = hkdf.New(sha256.New, seed, nil, []byte("fabric.engine.secure-random"))
	r.reseeds.Inc()
	return nil
}
