package rwlease

import (
	"runtime"
	"time"
	_ "unsafe" // for linkname
)

// ============================================================================
// Backoff Policies
// ============================================================================

// Backoff is the wait policy used between failed retries of a blocking
// operation. attempt is 0 for the first wait of a call and grows by one on
// each subsequent wait of the same call.
//
// A Backoff only tunes throughput and latency. Lock correctness never
// depends on it, and it must not acquire the Lease it is waiting on.
type Backoff interface {
	Wait(attempt int)
}

// BackoffFunc adapts an ordinary function to the Backoff interface.
type BackoffFunc func(attempt int)

// Wait calls f(attempt).
func (f BackoffFunc) Wait(attempt int) {
	f(attempt)
}

type spinBackoff struct{}

func (spinBackoff) Wait(int) {
	runtime_doSpin()
}

type yieldBackoff struct{}

func (yieldBackoff) Wait(attempt int) {
	if runtime_canSpin(attempt) {
		runtime_doSpin()
		return
	}
	runtime.Gosched()
}

// ExponentialBackoff spins while the runtime considers spinning
// profitable, then yields the processor Yields times, then sleeps for Min,
// doubling on every further attempt up to Max. A Max below Min is treated
// as Min.
type ExponentialBackoff struct {
	Yields int
	Min    time.Duration
	Max    time.Duration
}

// Wait implements Backoff.
func (b ExponentialBackoff) Wait(attempt int) {
	if runtime_canSpin(attempt) {
		runtime_doSpin()
		return
	}
	if d := b.sleepFor(attempt); d > 0 {
		time.Sleep(d)
		return
	}
	runtime.Gosched()
}

// sleepFor returns 0 while attempt is still in the spin or yield window.
func (b ExponentialBackoff) sleepFor(attempt int) time.Duration {
	k := attempt - activeSpin - b.Yields
	if k < 0 || b.Min <= 0 {
		return 0
	}
	limit := max(b.Max, b.Min)
	d := b.Min
	for ; k > 0 && d < limit; k-- {
		d <<= 1
	}
	return min(d, limit)
}

// activeSpin mirrors the runtime's active_spin, the number of attempts for
// which runtime_canSpin may report true.
const activeSpin = 4

var (
	// SpinBackoff never gives up the processor. It has the lowest latency
	// under brief contention and burns a core for as long as it waits.
	SpinBackoff Backoff = spinBackoff{}

	// YieldBackoff spins a few times and then yields with runtime.Gosched
	// on every further attempt.
	YieldBackoff Backoff = yieldBackoff{}

	// DefaultBackoff spins, then yields, then sleeps with bounded
	// exponential delay. It is used when no Backoff is configured and
	// suits drains that may take a while.
	//
	// The 500µs cap is derived from Facebook/folly's Sleeper:
	// https://github.com/facebook/folly/blob/main/folly/synchronization/detail/Sleeper.h
	DefaultBackoff Backoff = ExponentialBackoff{
		Yields: 8,
		Min:    50 * time.Microsecond,
		Max:    500 * time.Microsecond,
	}
)

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
