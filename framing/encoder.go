package framing

import (
	"errors"

	"github.com/danmuck/framectl/nbio"
)

type encodeState uint8

const (
	encodeReady encodeState = iota
	encodeHeader
	encodePayload
)

// Encoder serializes frames onto a byte channel. Exactly one frame is in
// flight at a time: a new frame is refused until the previous one is
// fully written, so frame bytes are never interleaved on the wire.
type Encoder struct {
	ch      nbio.Writer
	cfg     config
	state   encodeState
	header  [8]byte
	head    []byte
	payload []byte
	err     error
}

// NewEncoder builds an encoder with default layout over ch.
func NewEncoder(ch nbio.Writer) *Encoder {
	return NewBuilder().NewEncoder(ch)
}

func newEncoder(ch nbio.Writer, cfg config) *Encoder {
	return &Encoder{
		ch:    ch,
		cfg:   cfg,
		state: encodeReady,
	}
}

// Channel borrows the underlying channel.
func (e *Encoder) Channel() nbio.Writer {
	return e.ch
}

// Release reclaims ownership of the underlying channel. The encoder must
// not be used afterwards; a partially written frame is abandoned as-is.
func (e *Encoder) Release() nbio.Writer {
	ch := e.ch
	e.ch = nil
	return ch
}

// Send queues payload as the next frame and opportunistically flushes it.
// nbio.ErrWouldBlock means the previous frame still blocks acceptance:
// retry Send with the same payload later. A nil return means the frame
// was accepted and will reach the wire in Send-call order; drive any
// remainder with Flush. ErrFrameTooLarge is reported before a single byte
// of the rejected frame is written. Failures other than ErrWouldBlock are
// permanent.
func (e *Encoder) Send(payload []byte) error {
	if e.err != nil {
		return e.err
	}
	if e.state != encodeReady {
		if err := e.Flush(); err != nil {
			return err
		}
	}
	if len(payload) > e.cfg.maxFrameLen {
		return e.fail(ErrFrameTooLarge)
	}

	// The adjustment is decode-side interpretation only; the wire always
	// carries the raw payload length.
	e.cfg.order.PutUint(e.header[:e.cfg.lengthFieldLen], uint64(len(payload)))
	e.head = e.header[:e.cfg.lengthFieldLen]
	e.payload = payload
	e.state = encodeHeader

	if err := e.Flush(); err != nil && !errors.Is(err, nbio.ErrWouldBlock) {
		return err
	}
	return nil
}

// Flush drives the in-flight frame toward the wire. nbio.ErrWouldBlock
// means progress stalled and Flush should be called again later; nil
// means the encoder is idle with everything written. Any other failure is
// permanent.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	for {
		switch e.state {
		case encodeHeader:
			if len(e.head) == 0 {
				e.state = encodePayload
				continue
			}
			n, err := e.ch.TryWrite(e.head)
			if n > 0 {
				e.head = e.head[n:]
			}
			if err != nil {
				return e.fail(err)
			}
			// A zero-byte write is not a closure signal; retry.
		case encodePayload:
			if len(e.payload) == 0 {
				e.payload = nil
				e.state = encodeReady
				continue
			}
			n, err := e.ch.TryWrite(e.payload)
			if n > 0 {
				e.payload = e.payload[n:]
			}
			if err != nil {
				return e.fail(err)
			}
		default:
			if err := e.ch.TryFlush(); err != nil {
				return e.fail(err)
			}
			return nil
		}
	}
}

// fail records sticky failures; a would-block signal leaves the encoder
// resumable.
func (e *Encoder) fail(err error) error {
	if !errors.Is(err, nbio.ErrWouldBlock) {
		e.err = err
	}
	return err
}
