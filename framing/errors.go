package framing

import "errors"

var (
	ErrFrameTooLarge    = errors.New("framing: frame exceeds configured maximum length")
	ErrLengthOverflow   = errors.New("framing: length adjustment overflows frame length")
	ErrTruncatedHeader  = errors.New("framing: channel closed mid-header")
	ErrTruncatedPayload = errors.New("framing: channel closed mid-payload")
)
