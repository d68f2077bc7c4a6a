package framing

import "fmt"

// ByteOrder selects how the length field is laid out on the wire. The set
// is closed; each variant carries its own fixed encode/decode routine.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "big-endian"
	case LittleEndian:
		return "little-endian"
	default:
		return fmt.Sprintf("ByteOrder(%d)", uint8(o))
	}
}

// Uint decodes len(b) bytes, 1 through 8, as an unsigned integer.
func (o ByteOrder) Uint(b []byte) uint64 {
	if o == LittleEndian {
		return leUint(b)
	}
	return beUint(b)
}

// PutUint encodes the low len(b) bytes of v, 1 through 8.
func (o ByteOrder) PutUint(b []byte, v uint64) {
	if o == LittleEndian {
		lePutUint(b, v)
		return
	}
	bePutUint(b, v)
}

func beUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func leUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func bePutUint(b []byte, v uint64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func lePutUint(b []byte, v uint64) {
	for i := range b {
		b[i] = byte(v)
		v >>= 8
	}
}
