package rwlease

// Write acquires exclusive access. It first claims writer intent, which
// turns new readers away, and then waits for the readers that were already
// in to release.
//
// There is no queue: of several waiting writers, whichever wins the claim
// goes first.
func (l *Lease[T, W]) Write() WriteGuard[T, W] {
	l.claim()
	l.drain()
	return WriteGuard[T, W]{l: l}
}

// TryWrite acquires exclusive access only if the lease is completely free,
// with no writer and no readers. Otherwise it returns ErrBusy and leaves
// the state untouched; it never claims intent on its own.
func (l *Lease[T, W]) TryWrite() (WriteGuard[T, W], error) {
	if !l.state.CompareAndSwap(0, writerBit[W]()) {
		return WriteGuard[T, W]{}, ErrBusy
	}
	return WriteGuard[T, W]{l: l}, nil
}

// Claim claims writer intent, waiting while another writer holds or
// drains the lease, and returns without waiting for readers. The returned
// DrainGuard is upgraded once the readers are gone.
//
// Claim is the two-step form of Write for callers that want to do useful
// work, or give up, while readers drain.
func (l *Lease[T, W]) Claim() DrainGuard[T, W] {
	l.claim()
	return DrainGuard[T, W]{l: l}
}

// TryClaim is like Claim but returns ErrBusy instead of waiting when
// another writer already holds intent.
func (l *Lease[T, W]) TryClaim() (DrainGuard[T, W], error) {
	for {
		s := l.state.Load()
		if hasWriter[W](s) {
			return DrainGuard[T, W]{}, ErrBusy
		}
		// Reader count unchanged; only the flag moves.
		if l.state.CompareAndSwap(s, s|writerBit[W]()) {
			return DrainGuard[T, W]{l: l}, nil
		}
	}
}

func (l *Lease[T, W]) claim() {
	var attempt int
	for {
		s := l.state.Load()
		if !hasWriter[W](s) {
			if l.state.CompareAndSwap(s, s|writerBit[W]()) {
				return
			}
			// Lost to a reader or a writer; look again.
			continue
		}
		l.wait(&attempt)
	}
}

// drain waits for the reader count to reach zero. The flag is ours, so the
// count can only fall.
func (l *Lease[T, W]) drain() {
	var attempt int
	for !l.drained() {
		l.wait(&attempt)
	}
}

//go:nosplit
func (l *Lease[T, W]) drained() bool {
	return readerCount[W](l.state.Load()) == 0
}

// releaseWrite clears the writer flag. It serves both an abandoned claim,
// where readers may remain, and a full write lock, where none can.
func (l *Lease[T, W]) releaseWrite() {
	if !hasWriter[W](l.state.And(^writerBit[W]())) {
		panic("rwlease: release of unheld write lease")
	}
}
