package nbio

// Fixture is a scripted channel for tests. The read side plays back a
// sequence of deliveries, pending signals, and failures; once the script
// is exhausted the channel reports closure. The write side accepts
// everything by default, or follows an explicit script of partial
// acceptances, pending signals, and failures.
//
// A Fixture is driven from a single goroutine, like any other channel.
type Fixture struct {
	reads  []fixtureStep
	writes []fixtureStep
	wrote  []byte
}

type fixtureStep struct {
	data    []byte
	accept  int
	pending bool
	err     error
}

func NewFixture() *Fixture {
	return &Fixture{}
}

// ThenRead schedules a delivery of p, possibly split across multiple
// TryRead calls when the caller's capacity is smaller.
func (f *Fixture) ThenRead(p []byte) *Fixture {
	f.reads = append(f.reads, fixtureStep{data: append([]byte(nil), p...)})
	return f
}

// ThenPending schedules one would-block result on the read side.
func (f *Fixture) ThenPending() *Fixture {
	f.reads = append(f.reads, fixtureStep{pending: true})
	return f
}

// ThenFail schedules a hard read failure.
func (f *Fixture) ThenFail(err error) *Fixture {
	f.reads = append(f.reads, fixtureStep{err: err})
	return f
}

// ThenAccept schedules a write attempt that accepts at most n bytes.
// n may be zero to exercise the zero-progress retry path.
func (f *Fixture) ThenAccept(n int) *Fixture {
	f.writes = append(f.writes, fixtureStep{accept: n})
	return f
}

// ThenWritePending schedules one would-block result on the write side.
func (f *Fixture) ThenWritePending() *Fixture {
	f.writes = append(f.writes, fixtureStep{pending: true})
	return f
}

// ThenWriteFail schedules a hard write failure.
func (f *Fixture) ThenWriteFail(err error) *Fixture {
	f.writes = append(f.writes, fixtureStep{err: err})
	return f
}

// Written returns every byte the fixture has accepted, in order.
func (f *Fixture) Written() []byte {
	return f.wrote
}

func (f *Fixture) TryRead(p []byte) (int, error) {
	if len(f.reads) == 0 {
		return 0, nil
	}
	step := f.reads[0]
	if step.pending {
		f.reads = f.reads[1:]
		return 0, ErrWouldBlock
	}
	if step.err != nil {
		f.reads = f.reads[1:]
		return 0, step.err
	}
	n := copy(p, step.data)
	if n == len(step.data) {
		f.reads = f.reads[1:]
	} else {
		f.reads[0].data = step.data[n:]
	}
	return n, nil
}

func (f *Fixture) TryWrite(p []byte) (int, error) {
	if len(f.writes) == 0 {
		f.wrote = append(f.wrote, p...)
		return len(p), nil
	}
	step := f.writes[0]
	f.writes = f.writes[1:]
	if step.pending {
		return 0, ErrWouldBlock
	}
	if step.err != nil {
		return 0, step.err
	}
	n := step.accept
	if n > len(p) {
		n = len(p)
	}
	f.wrote = append(f.wrote, p[:n]...)
	return n, nil
}

func (f *Fixture) TryFlush() error {
	return nil
}
