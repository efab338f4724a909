package rwlease

// tryReadRetries bounds how many lost CAS races TryRead absorbs before
// reporting ErrBusy. Only races against other readers are retried; a set
// writer flag fails at once.
const tryReadRetries = 8

// Read acquires a read permit, waiting while a writer holds the lease or
// is draining toward it.
//
// If the reader count is already at MaxReaders, Read fails at once with
// ErrReaderOverflow instead of waiting, since waiting on this lease cannot
// bring the count down.
func (l *Lease[T, W]) Read() (ReadGuard[T, W], error) {
	if err := l.acquireRead(); err != nil {
		return ReadGuard[T, W]{}, err
	}
	return ReadGuard[T, W]{l: l}, nil
}

// TryRead is like Read but never waits on a writer: it returns ErrBusy
// when the writer flag is set, or when it keeps losing races against
// concurrent readers.
func (l *Lease[T, W]) TryRead() (ReadGuard[T, W], error) {
	if err := l.tryAcquireRead(); err != nil {
		return ReadGuard[T, W]{}, err
	}
	return ReadGuard[T, W]{l: l}, nil
}

func (l *Lease[T, W]) acquireRead() error {
	var attempt int
	for {
		s := l.state.Load()
		if hasWriter[W](s) {
			// Writer holding or draining. New readers stay out.
			l.wait(&attempt)
			continue
		}
		if readerCount[W](s) == MaxReaders[W]() {
			return ErrReaderOverflow
		}
		if l.state.CompareAndSwap(s, s+1) {
			return nil
		}
	}
}

func (l *Lease[T, W]) tryAcquireRead() error {
	for range tryReadRetries {
		s := l.state.Load()
		if hasWriter[W](s) {
			return ErrBusy
		}
		if readerCount[W](s) == MaxReaders[W]() {
			return ErrReaderOverflow
		}
		if l.state.CompareAndSwap(s, s+1) {
			return nil
		}
	}
	return ErrBusy
}

// releaseRead gives back one reader slot. The writer flag, set or not, is
// left alone, so a draining writer sees the count fall.
func (l *Lease[T, W]) releaseRead() {
	s := l.state.Add(^uint64(0))
	if readerCount[W](s+1) == 0 {
		// Undo the decrement so a recovered panic leaves the word intact.
		l.state.Add(1)
		panic("rwlease: release of unheld read permit")
	}
}
