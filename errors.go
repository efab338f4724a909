package rwlease

import "errors"

var (
	// ErrBusy is returned by the non-blocking operations when the requested
	// access cannot be granted right now. Nothing was changed; the caller
	// may retry, wait or give up.
	ErrBusy = errors.New("rwlease: lease is busy")

	// ErrReaderOverflow is returned when the reader count is already at
	// MaxReaders for the lease's word width. Waiting on the lease cannot
	// cure it; only readers releasing elsewhere can.
	ErrReaderOverflow = errors.New("rwlease: too many readers")
)
