package net

import "errors"

// Error kinds surfaced by the codec and frame transport. Higher layers wrap
// these with context; callers match with errors.Is.
var (
	// ErrTruncated means a read ran past the end of the buffer or stream.
	ErrTruncated = errors.New("truncated input")

	// ErrOverflow means a varint or varlong exceeded its byte or bit budget,
	// or a packed state index fell outside its palette.
	ErrOverflow = errors.New("value overflow")

	// ErrMalformed means the input violated the wire structure: a negative
	// length, an unknown discriminator, a data-length mismatch.
	ErrMalformed = errors.New("malformed data")

	// ErrTimedOut means the inter-read budget for a single frame was exhausted.
	ErrTimedOut = errors.New("read timed out")

	// ErrInflate and ErrDeflate report compression subsystem failures.
	ErrInflate = errors.New("inflate failed")
	ErrDeflate = errors.New("deflate failed")

	// ErrShortWrite means the transport accepted fewer bytes than given.
	ErrShortWrite = errors.New("short write")

	// ErrSocketClosed means the underlying byte stream is gone.
	ErrSocketClosed = errors.New("socket closed")
)
