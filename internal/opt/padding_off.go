//go:build (amd64 || 386 || arm || mips || mipsle || wasm) && !rwlease_disable_padding && !rwlease_enable_padding

package opt

// Pad_ separates the lease state word from the protected value.
// Padding is disabled by default for:
// - amd64
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
type Pad_ struct{}
