package rwlease

import (
	"sync/atomic"

	"github.com/llxisdsh/rwlease/internal/opt"
)

// Lease is a reader-writer lock that owns the value it protects and keeps
// its entire lock state in one atomic word.
//
// It is optimized for read-heavy, low-contention workloads where the
// critical section is small.
//
// Properties:
//   - Any number of readers, or one writer, at a time.
//   - A writer first claims intent (new readers are turned away), then
//     drains the readers that were already in.
//   - Busy-wait with a pluggable Backoff; no kernel queueing.
//   - No fairness: neither writers among themselves nor writers against
//     readers are ordered. Sustained reader arrivals may delay a writer's
//     drain indefinitely.
//   - No poisoning: a panic while a guard is held leaves the lease held.
//   - Not reentrant: acquiring again on a goroutine that already holds a
//     guard of the same Lease may deadlock.
//
// The value is reachable only through guards. The zero value is an
// unlocked Lease holding the zero T, using DefaultBackoff.
//
// A Lease must not be copied after first use, and must not be discarded
// while guards are outstanding.
type Lease[T any, W Word] struct {
	_       noCopy
	state   atomic.Uint64
	_       opt.Pad_
	backoff Backoff
	value   T
}

// NewLease creates a Lease holding value. The word width is chosen by the
// first type argument:
//
//	cfg := NewLease[uint32](map[string]string{})
//	hits := NewLease[uint8](0, WithBackoff(SpinBackoff))
func NewLease[W Word, T any](value T, options ...func(*Config)) *Lease[T, W] {
	var cfg Config
	for _, o := range options {
		o(&cfg)
	}
	return &Lease[T, W]{backoff: cfg.backoff, value: value}
}

// newLeaseWithState lets tests start from an arbitrary state word.
func newLeaseWithState[W Word, T any](s uint64, value T) *Lease[T, W] {
	l := &Lease[T, W]{value: value}
	l.state.Store(s)
	return l
}

func (l *Lease[T, W]) wait(attempt *int) {
	b := l.backoff
	if b == nil {
		b = DefaultBackoff
	}
	b.Wait(*attempt)
	*attempt++
}

// State returns a decoded snapshot of the state word.
func (l *Lease[T, W]) State() State {
	return decode[W](l.state.Load())
}

// CanRead reports whether a read would be admitted right now: no writer is
// holding or draining and the reader count has room.
func (l *Lease[T, W]) CanRead() bool {
	s := l.state.Load()
	return !hasWriter[W](s) && readerCount[W](s) < MaxReaders[W]()
}

// String describes the lock state, never the protected value.
func (l *Lease[T, W]) String() string {
	return "rwlease: " + l.State().String()
}

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
