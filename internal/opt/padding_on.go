//go:build !(amd64 || 386 || arm || mips || mipsle || wasm) && !rwlease_disable_padding && !rwlease_enable_padding

package opt

// Pad_ follows the lease state word and keeps the protected value a full
// cache line away from it. Readers bump the state word on every acquire;
// without the pad a writer's stores to the value would share its line.
//
// Padding is automatically enabled for architectures that are NOT:
// - amd64 (x86_64): Hardware optimizations often make padding less critical
// - 32-bit architectures (386, arm, mips, mipsle, wasm): Smaller cache lines/memory constraints
//
// Enabled for: arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, mips64le, etc.
type Pad_ struct {
	_ [(CacheLineSize_ - stateWordSize%CacheLineSize_) % CacheLineSize_]byte
}
