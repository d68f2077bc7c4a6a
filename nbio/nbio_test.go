package nbio

import (
	"bytes"
	"errors"
	"os"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

type scriptedReader struct {
	errs []error
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	err := r.errs[0]
	r.errs = r.errs[1:]
	return 0, err
}

func TestReaderAdapterFoldsEOFIntoClosure(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("ab")))
	p := make([]byte, 4)
	n, err := r.TryRead(p)
	if err != nil || n != 2 {
		t.Fatalf("unexpected read: n=%d err=%v", n, err)
	}
	n, err = r.TryRead(p)
	if err != nil || n != 0 {
		t.Fatalf("expected closure signal, got n=%d err=%v", n, err)
	}
}

func TestReaderAdapterMapsTimeoutsToWouldBlock(t *testing.T) {
	hard := errors.New("connection reset")
	r := NewReader(&scriptedReader{errs: []error{
		timeoutErr{},
		os.ErrDeadlineExceeded,
		hard,
	}})
	p := make([]byte, 1)
	for i := 0; i < 2; i++ {
		if _, err := r.TryRead(p); !errors.Is(err, ErrWouldBlock) {
			t.Fatalf("attempt %d: expected ErrWouldBlock, got %v", i, err)
		}
	}
	if _, err := r.TryRead(p); !errors.Is(err, hard) {
		t.Fatalf("expected hard error to propagate, got %v", err)
	}
}

func TestWriterAdapterReportsProgress(t *testing.T) {
	var sink bytes.Buffer
	w := NewWriter(&sink)
	n, err := w.TryWrite([]byte("frame"))
	if err != nil || n != 5 {
		t.Fatalf("unexpected write: n=%d err=%v", n, err)
	}
	if err := w.TryFlush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if sink.String() != "frame" {
		t.Fatalf("unexpected sink contents: %q", sink.String())
	}
}

func TestFixtureReadScriptSplitsDeliveries(t *testing.T) {
	f := NewFixture().
		ThenRead([]byte("abcd")).
		ThenPending().
		ThenRead([]byte("ef"))

	p := make([]byte, 3)
	n, err := f.TryRead(p)
	if err != nil || n != 3 || string(p[:n]) != "abc" {
		t.Fatalf("unexpected first read: n=%d err=%v", n, err)
	}
	n, err = f.TryRead(p)
	if err != nil || n != 1 || p[0] != 'd' {
		t.Fatalf("unexpected carry-over read: n=%d err=%v", n, err)
	}
	if _, err := f.TryRead(p); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("expected pending, got %v", err)
	}
	n, err = f.TryRead(p)
	if err != nil || string(p[:n]) != "ef" {
		t.Fatalf("unexpected final read: n=%d err=%v", n, err)
	}
	if n, err := f.TryRead(p); n != 0 || err != nil {
		t.Fatalf("expected closure after script, got n=%d err=%v", n, err)
	}
}

func TestFixtureWriteScriptCapsAcceptance(t *testing.T) {
	f := NewFixture().
		ThenAccept(2).
		ThenWritePending().
		ThenAccept(0)

	n, err := f.TryWrite([]byte("hello"))
	if err != nil || n != 2 {
		t.Fatalf("unexpected capped write: n=%d err=%v", n, err)
	}
	if _, err := f.TryWrite([]byte("llo")); !errors.Is(err, ErrWouldBlock) {
		t.Fatalf("expected pending, got %v", err)
	}
	n, err = f.TryWrite([]byte("llo"))
	if err != nil || n != 0 {
		t.Fatalf("expected zero-progress write, got n=%d err=%v", n, err)
	}
	n, err = f.TryWrite([]byte("llo"))
	if err != nil || n != 3 {
		t.Fatalf("expected unscripted write to accept all, got n=%d err=%v", n, err)
	}
	if string(f.Written()) != "hello" {
		t.Fatalf("unexpected written bytes: %q", f.Written())
	}
}
