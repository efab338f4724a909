//go:build rwlease_disable_padding && !rwlease_enable_padding

package opt

// Pad_ separates the lease state word from the protected value.
// Padding is force-disabled via the rwlease_disable_padding build tag.
// Use: go build -tags=rwlease_disable_padding
type Pad_ struct{}
