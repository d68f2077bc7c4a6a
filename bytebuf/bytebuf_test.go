package bytebuf

import (
	"bytes"
	"testing"
)

func fill(b *Buffer, data []byte) {
	b.Reserve(len(data))
	copy(b.Writable(), data)
	b.Commit(len(data))
}

func TestFIFOAppendDrain(t *testing.T) {
	b := New()
	fill(b, []byte("abcdef"))
	if b.Len() != 6 {
		t.Fatalf("unexpected length: %d", b.Len())
	}
	if got := b.Drain(3); !bytes.Equal(got, []byte("abc")) {
		t.Fatalf("unexpected drain: %q", got)
	}
	fill(b, []byte("ghi"))
	if got := b.Drain(b.Len()); !bytes.Equal(got, []byte("defghi")) {
		t.Fatalf("unexpected drain: %q", got)
	}
	if b.Len() != 0 {
		t.Fatalf("expected empty buffer, got %d", b.Len())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	b := New()
	fill(b, []byte{0x00, 0x00, 0x00, 0x09, 'a', 'b'})
	if got := b.Peek(0, 4); !bytes.Equal(got, []byte{0, 0, 0, 9}) {
		t.Fatalf("unexpected peek: %v", got)
	}
	if got := b.Peek(4, 2); !bytes.Equal(got, []byte("ab")) {
		t.Fatalf("unexpected offset peek: %q", got)
	}
	if b.Len() != 6 {
		t.Fatalf("peek consumed bytes: %d", b.Len())
	}
}

func TestSkipDiscardsHead(t *testing.T) {
	b := New()
	fill(b, []byte("xxxxpayload"))
	b.Skip(4)
	if got := b.Drain(b.Len()); !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("unexpected remainder: %q", got)
	}
}

func TestReserveCompactsBeforeGrowing(t *testing.T) {
	b := New()
	fill(b, []byte("abcdefgh"))
	b.Skip(6)
	// Room for 6 more exists in place once the head is compacted.
	b.Reserve(6)
	if len(b.Writable()) < 6 {
		t.Fatalf("reserve left %d writable bytes", len(b.Writable()))
	}
	fill(b, []byte("123456"))
	if got := b.Drain(b.Len()); !bytes.Equal(got, []byte("gh123456")) {
		t.Fatalf("compaction lost bytes: %q", got)
	}
}

func TestDrainedSliceIsOwnedByCaller(t *testing.T) {
	b := New()
	fill(b, []byte("frame-one"))
	got := b.Drain(9)
	fill(b, []byte("frame-two"))
	b.Drain(9)
	if !bytes.Equal(got, []byte("frame-one")) {
		t.Fatalf("drained slice aliased buffer storage: %q", got)
	}
}

func TestCommitOutsideCapacityPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	b := New()
	b.Reserve(4)
	b.Commit(cap(b.Writable()) + 1)
}
