package tile

import "errors"

// The four non-recoverable error kinds a decode can fail with. All of
// them collapse to a single boolean at the public entry points; they
// are kept distinct internally so logging.Default() can record which
// one actually fired.
var (
	// ErrTruncatedInput means the stream ran out of bytes mid-order: a
	// header, a run-length extension, a payload pixel, or a bitmap byte
	// was required but not present.
	ErrTruncatedInput = errors.New("tile: truncated input")

	// ErrUnrecognizedOrder means a header byte's code has no decoder mapping.
	ErrUnrecognizedOrder = errors.New("tile: unrecognized order code")

	// ErrDestinationOverrun means a well-formed stream would produce
	// more pixels than the declared tile can hold.
	ErrDestinationOverrun = errors.New("tile: destination overrun")

	// ErrInvalidParameters means bpp is unsupported, a tile dimension is
	// zero, or (compressor-side) width isn't a multiple of 4 or a
	// dimension exceeds 64.
	ErrInvalidParameters = errors.New("tile: invalid parameters")
)
