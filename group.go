package rwlease

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// Group allows shared reader-writer leasing on arbitrary keys.
//
// Features:
//   - RLock/RUnlock for shared read access.
//   - Lock/Unlock for exclusive write access.
//   - TryRLock/TryLock that never wait.
//   - Infinite Keys & Auto-Cleanup: a key's lease exists only while some
//     goroutine holds or waits on it.
//
// Usage:
//
//	var group Group[string, uint32]
//
//	// Readers
//	if err := group.RLock("config"); err != nil {
//		return err
//	}
//	read(config)
//	group.RUnlock("config")
//
//	// Writer
//	group.Lock("config")
//	write(config)
//	group.Unlock("config")
//
// Each key behaves like a Lease[struct{}, W]. Unlocking a key that is not
// held is a programming error and panics.
type Group[K comparable, W Word] struct {
	_ noCopy
	m atomic.Pointer[xsync.Map[K, *groupEntry[W]]]
}

type groupEntry[W Word] struct {
	l   Lease[struct{}, W]
	ref int32
}

// RLock acquires a read permit on k, waiting while a writer holds k.
func (g *Group[K, W]) RLock(k K) error {
	e := g.ref(k)
	if err := e.l.acquireRead(); err != nil {
		g.unref(k, e)
		return err
	}
	return nil
}

// TryRLock is like RLock but returns ErrBusy instead of waiting.
func (g *Group[K, W]) TryRLock(k K) error {
	e := g.ref(k)
	if err := e.l.tryAcquireRead(); err != nil {
		g.unref(k, e)
		return err
	}
	return nil
}

// RUnlock releases a read permit on k.
func (g *Group[K, W]) RUnlock(k K) {
	e := g.held(k)
	e.l.releaseRead()
	g.unref(k, e)
}

// Lock acquires exclusive access to k.
func (g *Group[K, W]) Lock(k K) {
	e := g.ref(k)
	e.l.claim()
	e.l.drain()
}

// TryLock acquires exclusive access to k only if nobody holds it.
func (g *Group[K, W]) TryLock(k K) error {
	e := g.ref(k)
	if !e.l.state.CompareAndSwap(0, writerBit[W]()) {
		g.unref(k, e)
		return ErrBusy
	}
	return nil
}

// Unlock releases exclusive access to k.
func (g *Group[K, W]) Unlock(k K) {
	e := g.held(k)
	e.l.releaseWrite()
	g.unref(k, e)
}

// Len returns the number of keys currently held or waited on.
func (g *Group[K, W]) Len() int {
	return g.table().Size()
}

// table returns the key table, creating it on first use so that the zero
// Group is ready to use.
func (g *Group[K, W]) table() *xsync.Map[K, *groupEntry[W]] {
	if m := g.m.Load(); m != nil {
		return m
	}
	m := xsync.NewMap[K, *groupEntry[W]]()
	if g.m.CompareAndSwap(nil, m) {
		return m
	}
	return g.m.Load()
}

// ref and unref run inside Compute, which serializes them per key, so ref
// needs no atomics of its own.
func (g *Group[K, W]) ref(k K) *groupEntry[W] {
	e, _ := g.table().Compute(
		k,
		func(old *groupEntry[W], loaded bool) (*groupEntry[W], xsync.ComputeOp) {
			if !loaded {
				return &groupEntry[W]{ref: 1}, xsync.UpdateOp
			}
			old.ref++
			return old, xsync.UpdateOp
		},
	)
	return e
}

func (g *Group[K, W]) unref(k K, e *groupEntry[W]) {
	g.table().Compute(
		k,
		func(old *groupEntry[W], loaded bool) (*groupEntry[W], xsync.ComputeOp) {
			if !loaded || old != e {
				return old, xsync.CancelOp
			}
			e.ref--
			if e.ref <= 0 {
				return nil, xsync.DeleteOp
			}
			return e, xsync.UpdateOp
		},
	)
}

func (g *Group[K, W]) held(k K) *groupEntry[W] {
	e, ok := g.table().Load(k)
	if !ok {
		panic("rwlease: unlock of unheld group key")
	}
	return e
}
