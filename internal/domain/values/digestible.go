package values

// Digestible is an embeddable helper for caller types that lazily
// compute and cache their own content digest through the façade. "Has a
// digest" means the cached value is non-nil and not the EMPTY sentinel.
type Digestible struct {
	digest *FrozenDigest
}

// GetDigest returns the cached digest, or nil when none was set.
func (d *Digestible) GetDigest() *FrozenDigest { return d.digest }

// SetDigest replaces the cached digest.
func (d *Digestible) SetDigest(digest *FrozenDigest) { d.digest = digest }

// HasDigest reports whether a real digest has been cached.
func (d *Digestible) HasDigest() bool {
	return d.digest != nil && !d.digest.IsEmpty()
}
