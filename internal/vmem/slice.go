package vmem

import (
	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Slice is a portable Space backed by a Go byte slice. The full capacity is
// reserved at construction without being zeroed; each extension clears only
// the bytes it exposes, matching the zero-filled pages an OS hands out.
type Slice struct {
	buf    []byte
	limit  int
	closed bool
}

// NewSlice reserves limit bytes (DefaultLimit when 0).
func NewSlice(limit int) (*Slice, error) {
	limit, err := checkLimit(limit)
	if err != nil {
		return nil, err
	}
	return &Slice{
		buf:   dirtmake.Bytes(0, limit),
		limit: limit,
	}, nil
}

// Sbrk implements Space.
func (s *Slice) Sbrk(n int) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	old := len(s.buf)
	if err := checkIncrement(old, s.limit, n); err != nil {
		return 0, err
	}
	s.buf = s.buf[:old+n]
	clear(s.buf[old:])
	return old, nil
}

// Bytes implements Space.
func (s *Slice) Bytes() []byte { return s.buf }

// Limit returns the reservation size.
func (s *Slice) Limit() int { return s.limit }

// Sync implements Space. Slices have nothing to persist.
func (s *Slice) Sync(off, n int) error {
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Close implements Space.
func (s *Slice) Close() error {
	s.closed = true
	s.buf = nil
	return nil
}
