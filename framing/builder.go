package framing

import (
	"fmt"

	"github.com/danmuck/framectl/nbio"
)

const (
	DefaultMaxFrameLength    = 8 * 1024 * 1024
	DefaultLengthFieldLength = 4
)

// Builder assembles the header layout shared by a decoder and an encoder.
// Building both sides from one Builder guarantees they agree on the wire
// format. The zero-value setters simply record; only the length field
// width is validated eagerly, since a width outside [1,8] is a
// programming error rather than a runtime condition.
type Builder struct {
	maxFrameLen       int
	lengthFieldLen    int
	lengthFieldOffset int
	lengthAdjustment  int
	numSkip           int
	numSkipSet        bool
	order             ByteOrder
}

func NewBuilder() *Builder {
	return &Builder{
		maxFrameLen:    DefaultMaxFrameLength,
		lengthFieldLen: DefaultLengthFieldLength,
		order:          BigEndian,
	}
}

// MaxFrameLength caps the payload length a decoder will accept and an
// encoder will emit.
func (b *Builder) MaxFrameLength(n int) *Builder {
	b.maxFrameLen = n
	return b
}

// LengthFieldLength sets the width of the length field in bytes. Widths
// outside [1,8] panic.
func (b *Builder) LengthFieldLength(n int) *Builder {
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("framing: invalid length field length %d, want 1..8", n))
	}
	b.lengthFieldLen = n
	return b
}

// LengthFieldOffset sets how many unrelated header bytes precede the
// length field.
func (b *Builder) LengthFieldOffset(n int) *Builder {
	b.lengthFieldOffset = n
	return b
}

// LengthAdjustment sets the signed delta added to the parsed length
// before payload bytes are counted. Decode-side only; the encoder always
// writes the raw payload length.
func (b *Builder) LengthAdjustment(n int) *Builder {
	b.lengthAdjustment = n
	return b
}

// NumSkip sets the total header bytes discarded before the payload,
// overriding the default of offset + field length. When set larger than
// the default, the bytes between the length field and the skip boundary
// are read off the wire and dropped uninterpreted.
func (b *Builder) NumSkip(n int) *Builder {
	b.numSkip = n
	b.numSkipSet = true
	return b
}

// Order sets the byte order of the length field.
func (b *Builder) Order(o ByteOrder) *Builder {
	b.order = o
	return b
}

// NewDecoder binds the finished configuration to the read half of a
// channel.
func (b *Builder) NewDecoder(ch nbio.Reader) *Decoder {
	return newDecoder(ch, b.config())
}

// NewEncoder binds the finished configuration to the write half of a
// channel.
func (b *Builder) NewEncoder(ch nbio.Writer) *Encoder {
	return newEncoder(ch, b.config())
}

// config is the immutable layout snapshot a decoder or encoder runs on.
// It is copied out of the Builder so later Builder mutation cannot skew
// an already-bound wire side.
type config struct {
	maxFrameLen       int
	lengthFieldLen    int
	lengthFieldOffset int
	lengthAdjustment  int
	numSkip           int
	order             ByteOrder
}

func (b *Builder) config() config {
	cfg := config{
		maxFrameLen:       b.maxFrameLen,
		lengthFieldLen:    b.lengthFieldLen,
		lengthFieldOffset: b.lengthFieldOffset,
		lengthAdjustment:  b.lengthAdjustment,
		numSkip:           b.numSkip,
		order:             b.order,
	}
	if !b.numSkipSet {
		cfg.numSkip = b.lengthFieldOffset + b.lengthFieldLen
	}
	return cfg
}

// effectiveHeaderLen is the byte count that must be buffered before the
// header can be parsed: enough to reach past both the length field and
// the skip boundary.
func (c config) effectiveHeaderLen() int {
	field := c.lengthFieldOffset + c.lengthFieldLen
	if c.numSkip > field {
		return c.numSkip
	}
	return field
}
