package framing

import (
	"errors"
	"io"
	"math"

	"github.com/danmuck/framectl/bytebuf"
	"github.com/danmuck/framectl/nbio"
)

type decodeState uint8

const (
	decodeHead decodeState = iota
	decodeData
)

// Decoder turns a byte channel into a lazy, forward-only sequence of
// frames. It owns its buffer exclusively and performs at most one channel
// read attempt per invocation step.
type Decoder struct {
	ch    nbio.Reader
	cfg   config
	buf   *bytebuf.Buffer
	state decodeState
	need  int
	done  bool
	err   error
}

// NewDecoder builds a decoder with default layout over ch.
func NewDecoder(ch nbio.Reader) *Decoder {
	return NewBuilder().NewDecoder(ch)
}

func newDecoder(ch nbio.Reader, cfg config) *Decoder {
	return &Decoder{
		ch:    ch,
		cfg:   cfg,
		buf:   bytebuf.New(),
		state: decodeHead,
	}
}

// Channel borrows the underlying channel.
func (d *Decoder) Channel() nbio.Reader {
	return d.ch
}

// Release reclaims ownership of the underlying channel. The decoder must
// not be used afterwards; buffered bytes not yet yielded as frames are
// discarded.
func (d *Decoder) Release() nbio.Reader {
	ch := d.ch
	d.ch = nil
	return ch
}

// Next produces the next frame. It returns io.EOF once the channel closes
// cleanly at a frame boundary, nbio.ErrWouldBlock when the channel has no
// bytes to offer yet (call Next again later; no work is lost), or a
// decoding failure. After any failure other than ErrWouldBlock the
// decoder is unusable and keeps returning the same error.
func (d *Decoder) Next() ([]byte, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.done {
		return nil, io.EOF
	}
	for {
		switch d.state {
		case decodeHead:
			n, err := d.readHead()
			if err != nil {
				if errors.Is(err, io.EOF) {
					d.done = true
					return nil, io.EOF
				}
				return nil, d.fail(err)
			}
			d.need = n
			d.state = decodeData
		case decodeData:
			frame, err := d.readData()
			if err != nil {
				return nil, d.fail(err)
			}
			d.state = decodeHead
			return frame, nil
		}
	}
}

// fail records sticky failures. A would-block signal is a suspension, not
// a failure, and leaves the decoder resumable.
func (d *Decoder) fail(err error) error {
	if !errors.Is(err, nbio.ErrWouldBlock) {
		d.err = err
	}
	return err
}

// readHead buffers and parses the fixed header, returning the payload
// length. io.EOF reports clean end-of-sequence.
func (d *Decoder) readHead() (int, error) {
	headLen := d.cfg.effectiveHeaderLen()
	for {
		if d.buf.Len() >= headLen {
			field := d.buf.Peek(d.cfg.lengthFieldOffset, d.cfg.lengthFieldLen)
			raw := d.cfg.order.Uint(field)

			// Reject a hostile length before buffering any payload.
			if raw > uint64(d.cfg.maxFrameLen) {
				return 0, ErrFrameTooLarge
			}
			n, ok := adjustLength(raw, d.cfg.lengthAdjustment)
			if !ok {
				return 0, ErrLengthOverflow
			}

			d.buf.Skip(d.cfg.numSkip)
			d.buf.Reserve(n)
			return n, nil
		}

		d.buf.Reserve(headLen - d.buf.Len())
		n, err := d.fill()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			if d.buf.Len() == 0 {
				return 0, io.EOF
			}
			// A partial header can never be completed by a future read.
			return 0, ErrTruncatedHeader
		}
	}
}

// readData buffers the remaining payload bytes and drains exactly one
// frame. Capacity was already reserved when the header was parsed.
func (d *Decoder) readData() ([]byte, error) {
	for {
		if d.buf.Len() >= d.need {
			return d.buf.Drain(d.need), nil
		}
		n, err := d.fill()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrTruncatedPayload
		}
	}
}

// fill performs exactly one read attempt into the reserved tail capacity.
func (d *Decoder) fill() (int, error) {
	n, err := d.ch.TryRead(d.buf.Writable())
	if n > 0 {
		d.buf.Commit(n)
	}
	return n, err
}

// adjustLength applies the signed decode-side adjustment with overflow
// checking in both directions.
func adjustLength(raw uint64, adj int) (int, bool) {
	if adj < 0 {
		m := uint64(-int64(adj))
		if m > raw {
			return 0, false
		}
		raw -= m
	} else {
		sum := raw + uint64(adj)
		if sum < raw {
			return 0, false
		}
		raw = sum
	}
	if raw > uint64(math.MaxInt) {
		return 0, false
	}
	return int(raw), true
}
