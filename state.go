package rwlease

import (
	"strconv"
	"unsafe"
)

// ============================================================================
// State Word Layout
// ============================================================================

// Word is the set of unsigned integer types a Lease can use as its state
// word. The width of W decides the layout:
//
//	bit W-1:      writer flag (1 = a writer holds or is draining)
//	bits W-2..0:  reader count
//
// So a Lease[T, uint8] admits at most 127 concurrent readers and a
// Lease[T, uint64] at most 2^63-1.
//
// W fixes the layout and the reader limit, not the storage: sync/atomic
// has no 8 or 16-bit operations, so every Lease keeps its state in one
// 64-bit atomic cell whatever W is.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

//go:nosplit
func wordBits[W Word]() uint {
	return uint(unsafe.Sizeof(W(0))) * 8
}

//go:nosplit
func writerBit[W Word]() uint64 {
	return 1 << (wordBits[W]() - 1)
}

// MaxReaders returns the largest reader count representable in a W-bit
// state word, 2^(W-1) - 1.
//
//go:nosplit
func MaxReaders[W Word]() uint64 {
	return writerBit[W]() - 1
}

//go:nosplit
func compose[W Word](writer bool, readers uint64) uint64 {
	s := readers & MaxReaders[W]()
	if writer {
		s |= writerBit[W]()
	}
	return s
}

//go:nosplit
func hasWriter[W Word](s uint64) bool {
	return s&writerBit[W]() != 0
}

//go:nosplit
func readerCount[W Word](s uint64) uint64 {
	return s & MaxReaders[W]()
}

// State is a decoded snapshot of a lease's state word.
//
// It reflects a single moment in time, not the current moment. Use it
// for debugging and tests, never to decide whether to lock.
type State struct {
	// Writer reports a writer holding or draining toward exclusive access.
	Writer bool
	// Readers is the number of outstanding read permits.
	Readers uint64
}

func decode[W Word](s uint64) State {
	return State{Writer: hasWriter[W](s), Readers: readerCount[W](s)}
}

// Draining reports a writer that has claimed intent while readers that
// arrived before it are still active.
func (s State) Draining() bool {
	return s.Writer && s.Readers != 0
}

func (s State) String() string {
	switch {
	case !s.Writer && s.Readers == 0:
		return "U"
	case !s.Writer:
		return "R; readers: " + strconv.FormatUint(s.Readers, 10)
	case s.Readers == 0:
		return "W"
	default:
		return "W+D; waiting for readers: " + strconv.FormatUint(s.Readers, 10)
	}
}
