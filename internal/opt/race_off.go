//go:build !race

package opt

// Race_ reports whether the race detector is enabled. Stress tests use it
// to shrink their loops.
const Race_ = false
