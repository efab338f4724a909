package opt

import (
	"testing"
	"unsafe"
)

func TestPadSize(t *testing.T) {
	size := unsafe.Sizeof(Pad_{})
	if size == 0 {
		return
	}
	if (size+stateWordSize)%CacheLineSize_ != 0 {
		t.Fatalf("pad=%d state=%d does not fill a cache line of %d",
			size, stateWordSize, CacheLineSize_)
	}
}

func TestCacheLineSize(t *testing.T) {
	if CacheLineSize_ == 0 || CacheLineSize_&(CacheLineSize_-1) != 0 {
		t.Fatalf("CacheLineSize_=%d is not a power of two", CacheLineSize_)
	}
}
