package rwlease

// ============================================================================
// Configuration
// ============================================================================

// Config defines configurable options for Lease initialization.
type Config struct {
	// backoff is the wait policy of the blocking operations.
	// If nil, DefaultBackoff is used.
	backoff Backoff
}

// WithBackoff sets the wait policy used by Read, Write, Claim and
// DrainGuard.Upgrade between failed retries. Pass SpinBackoff for the
// lowest latency under brief contention, YieldBackoff for a balance, or an
// ExponentialBackoff when drains are expected to be long. A nil b keeps
// DefaultBackoff.
func WithBackoff(b Backoff) func(*Config) {
	return func(c *Config) {
		c.backoff = b
	}
}
