//go:build rwlease_enable_padding

package opt

// Pad_ separates the lease state word from the protected value.
// Padding is force-enabled via the rwlease_enable_padding build tag.
// Use: go build -tags=rwlease_enable_padding
type Pad_ struct {
	_ [(CacheLineSize_ - stateWordSize%CacheLineSize_) % CacheLineSize_]byte
}
