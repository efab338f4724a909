package rwlease

import (
	"testing"
)

func TestMaxReaders(t *testing.T) {
	cases := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"uint8", MaxReaders[uint8](), 127},
		{"uint16", MaxReaders[uint16](), 1<<15 - 1},
		{"uint32", MaxReaders[uint32](), 1<<31 - 1},
		{"uint64", MaxReaders[uint64](), 1<<63 - 1},
		{"uintptr", MaxReaders[uintptr](), uint64(^uintptr(0) >> 1)},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("%s: MaxReaders=%d want=%d", c.name, c.got, c.want)
		}
	}
}

func testCodec[W Word](t *testing.T) {
	t.Helper()
	m := MaxReaders[W]()
	for _, c := range []struct {
		writer  bool
		readers uint64
	}{
		{false, 0}, {true, 0},
		{false, 1}, {true, 1},
		{false, m - 1}, {true, m - 1},
		{false, m}, {true, m},
	} {
		s := compose[W](c.writer, c.readers)
		if s&^(writerBit[W]()|m) != 0 {
			t.Fatalf("bits=%d compose(%v,%d)=%#x escapes the word",
				wordBits[W](), c.writer, c.readers, s)
		}
		if hasWriter[W](s) != c.writer || readerCount[W](s) != c.readers {
			t.Fatalf("bits=%d compose(%v,%d)=%#x decodes to %v",
				wordBits[W](), c.writer, c.readers, s, decode[W](s))
		}
	}
	// Incrementing just below the maximum must not reach the flag.
	if s := compose[W](false, m-1) + 1; hasWriter[W](s) || readerCount[W](s) != m {
		t.Fatalf("bits=%d increment to max gave %v", wordBits[W](), decode[W](s))
	}
}

func TestCodec(t *testing.T) {
	t.Run("uint8", testCodec[uint8])
	t.Run("uint16", testCodec[uint16])
	t.Run("uint32", testCodec[uint32])
	t.Run("uint64", testCodec[uint64])
	t.Run("uintptr", testCodec[uintptr])
}

func TestCodec_Uint8Layout(t *testing.T) {
	if s := compose[uint8](true, 5); s != 0x85 {
		t.Fatalf("compose(true,5)=%#x want 0x85", s)
	}
	if s := compose[uint8](false, 127); s != 0x7f {
		t.Fatalf("compose(false,127)=%#x want 0x7f", s)
	}
	if s := compose[uint8](true, 0); s != 0x80 {
		t.Fatalf("compose(true,0)=%#x want 0x80", s)
	}
}

func TestState_String(t *testing.T) {
	cases := []struct {
		s    State
		want string
	}{
		{State{}, "U"},
		{State{Readers: 2}, "R; readers: 2"},
		{State{Writer: true}, "W"},
		{State{Writer: true, Readers: 3}, "W+D; waiting for readers: 3"},
	}
	for _, c := range cases {
		if got := c.s.String(); got != c.want {
			t.Fatalf("%#v: got %q want %q", c.s, got, c.want)
		}
	}
	if (State{Writer: true}).Draining() || !(State{Writer: true, Readers: 1}).Draining() {
		t.Fatal("Draining mismatch")
	}
}
