// Package framing owns length-prefixed frame delimiting over a
// non-blocking byte channel.
//
// Ownership boundary:
// - Builder: shared header-layout configuration for both wire sides
// - Decoder: channel -> lazy sequence of frames
// - Encoder: frames -> channel, one frame fully on the wire at a time
//
// Wire format (defaults: 4-byte big-endian length, 8 MiB cap):
//
//	[length_field_offset ignored bytes]
//	[length field: length_field_len bytes, configured byte order]
//	[num_skip - offset - field_len filler bytes, discarded, only when
//	 num_skip is set explicitly larger]
//	[payload: parsed length + length_adjustment bytes]
//
// Both state machines are single-owner and cooperative: every operation
// performs at most one channel attempt per step, returns
// nbio.ErrWouldBlock when the channel has no progress to offer, and can be
// re-invoked later to resume exactly where it suspended.
package framing
