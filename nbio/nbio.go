// Package nbio owns the non-blocking byte channel contract consumed by
// the framing layer.
//
// Ownership boundary:
// - Reader/Writer try-operation interfaces and the ErrWouldBlock signal
// - adapters lifting blocking io.Reader/io.Writer values into the contract
// - scripted Fixture channel for exercising suspend/resume paths
//
// Contract: TryRead deposits zero or more bytes into the caller-provided
// slice. A zero-byte transfer with a nil error while capacity was offered
// means the channel has closed; ErrWouldBlock means no bytes are available
// right now and the attempt should be retried later. The two signals are
// never conflated. Writes mirror this, except a zero-byte transfer on the
// write side is not a closure signal.
package nbio

import (
	"errors"
	"io"
)

// ErrWouldBlock reports that an I/O attempt made no progress and should be
// retried once the channel is ready again. It is a control-flow signal,
// not a failure.
var ErrWouldBlock = errors.New("nbio: operation would block")

// Reader is the read half of a non-blocking byte channel.
type Reader interface {
	// TryRead pulls bytes into p. It returns the number of bytes
	// transferred, ErrWouldBlock when none are available yet, or the
	// channel's hard failure. (0, nil) with len(p) > 0 means closed.
	TryRead(p []byte) (int, error)
}

// Writer is the write half of a non-blocking byte channel.
type Writer interface {
	// TryWrite pushes bytes from p. Zero bytes transferred with a nil
	// error means the attempt should simply be repeated.
	TryWrite(p []byte) (int, error)

	// TryFlush pushes buffered bytes toward the peer. ErrWouldBlock means
	// flushing is still in progress.
	TryFlush() error
}

// NewReader adapts a blocking io.Reader to the Reader contract. io.EOF is
// folded into the zero-byte closure signal; deadline and timeout errors
// become ErrWouldBlock.
func NewReader(r io.Reader) Reader {
	return &readerAdapter{r: r}
}

// NewWriter adapts a blocking io.Writer to the Writer contract, with the
// same deadline/timeout mapping as NewReader.
func NewWriter(w io.Writer) Writer {
	return &writerAdapter{w: w}
}

type readerAdapter struct {
	r io.Reader
}

func (a *readerAdapter) TryRead(p []byte) (int, error) {
	n, err := a.r.Read(p)
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		return n, nil
	case isWouldBlock(err):
		return n, ErrWouldBlock
	default:
		return n, err
	}
}

type writerAdapter struct {
	w io.Writer
}

func (a *writerAdapter) TryWrite(p []byte) (int, error) {
	n, err := a.w.Write(p)
	switch {
	case err == nil:
		return n, nil
	case isWouldBlock(err):
		return n, ErrWouldBlock
	default:
		return n, err
	}
}

func (a *writerAdapter) TryFlush() error {
	f, ok := a.w.(interface{ Flush() error })
	if !ok {
		return nil
	}
	err := f.Flush()
	switch {
	case err == nil:
		return nil
	case isWouldBlock(err):
		return ErrWouldBlock
	default:
		return err
	}
}

// isWouldBlock reports whether err is a deadline/timeout condition, the
// closest blocking-I/O analogue to "no progress available right now".
// Covers os.ErrDeadlineExceeded and net.Error timeouts.
func isWouldBlock(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
