package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadMagic indicates the bytes at an offset do not form a block header.
	ErrBadMagic = errors.New("format: bad block magic")
	// ErrMisaligned indicates a payload size that is not a multiple of Alignment.
	ErrMisaligned = errors.New("format: misaligned payload size")
)
