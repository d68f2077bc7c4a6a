// Package bytebuf owns the growable FIFO byte container used by the
// framing state machines.
//
// Ownership boundary:
// - append-side capacity reservation and commit-after-read
// - head-side peek, drain, and skip
//
// A Buffer has exactly one owner; it is not safe for concurrent use.
package bytebuf

import "fmt"

// Buffer is an owned append/drain byte container. Bytes land at the tail
// via Writable/Commit and are consumed from the head via Drain/Skip.
type Buffer struct {
	b   []byte
	off int
}

func New() *Buffer {
	return &Buffer{}
}

// Len reports the number of unread bytes between head and tail.
func (b *Buffer) Len() int {
	return len(b.b) - b.off
}

// Reserve ensures at least n bytes of writable capacity at the tail,
// compacting or reallocating as needed. Unread bytes are preserved.
func (b *Buffer) Reserve(n int) {
	if n < 0 {
		panic(fmt.Sprintf("bytebuf: negative reservation %d", n))
	}
	if cap(b.b)-len(b.b) >= n {
		return
	}
	unread := b.Len()
	if cap(b.b)-unread >= n {
		copy(b.b, b.b[b.off:])
		b.b = b.b[:unread]
		b.off = 0
		return
	}
	nb := make([]byte, unread, unread+n)
	copy(nb, b.b[b.off:])
	b.b = nb
	b.off = 0
}

// Writable exposes the spare tail capacity for an I/O read to land bytes
// in. The slice is only valid until the next mutating call; bytes written
// into it become unread data once committed via Commit.
func (b *Buffer) Writable() []byte {
	return b.b[len(b.b):cap(b.b)]
}

// Commit extends the unread region by n bytes previously deposited into
// the Writable slice.
func (b *Buffer) Commit(n int) {
	if n < 0 || n > cap(b.b)-len(b.b) {
		panic(fmt.Sprintf("bytebuf: commit %d outside writable capacity %d", n, cap(b.b)-len(b.b)))
	}
	b.b = b.b[:len(b.b)+n]
}

// Peek returns a view of n unread bytes starting off bytes past the head,
// without consuming them. The view is only valid until the next mutating
// call.
func (b *Buffer) Peek(off, n int) []byte {
	if off < 0 || n < 0 || off+n > b.Len() {
		panic(fmt.Sprintf("bytebuf: peek [%d:%d] outside unread length %d", off, off+n, b.Len()))
	}
	return b.b[b.off+off : b.off+off+n]
}

// Drain removes the first n unread bytes from the head and returns them
// as a fresh slice owned by the caller.
func (b *Buffer) Drain(n int) []byte {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("bytebuf: drain %d outside unread length %d", n, b.Len()))
	}
	out := make([]byte, n)
	copy(out, b.b[b.off:b.off+n])
	b.off += n
	b.reclaim()
	return out
}

// Skip discards the first n unread bytes from the head.
func (b *Buffer) Skip(n int) {
	if n < 0 || n > b.Len() {
		panic(fmt.Sprintf("bytebuf: skip %d outside unread length %d", n, b.Len()))
	}
	b.off += n
	b.reclaim()
}

// reclaim resets the head offset once everything has been consumed so the
// full capacity becomes writable again.
func (b *Buffer) reclaim() {
	if b.off == len(b.b) {
		b.b = b.b[:0]
		b.off = 0
	}
}
