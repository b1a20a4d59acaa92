// Package vmem provides the address-space sources a heap grows into.
//
// Every source behaves like the classic program break: it owns a reserved
// range whose prefix [0, break) is usable, and Sbrk moves the break forward
// by exactly the requested amount. Memory is never handed back; the break
// only grows. Offsets into Bytes() stay valid for the life of the source
// because the reservation is made once up front and never moves.
package vmem

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

var (
	// ErrNoMemory indicates the reservation cannot satisfy an extension.
	ErrNoMemory = errors.New("vmem: out of address space")

	// ErrClosed indicates the source was already released.
	ErrClosed = errors.New("vmem: source closed")

	// ErrBadLimit indicates a reservation size that is zero, negative, or too
	// large to be addressed with 32-bit block offsets.
	ErrBadLimit = errors.New("vmem: invalid reservation limit")

	// ErrUnsupported indicates the platform lacks the requested mapping kind.
	ErrUnsupported = errors.New("vmem: unsupported on this platform")
)

// Space is an address-space source with program-break semantics.
type Space interface {
	// Sbrk extends the break by n bytes and returns the previous break.
	// Sbrk(0) reports the current break without changing it.
	Sbrk(n int) (int, error)

	// Bytes returns the usable prefix [0, break).
	Bytes() []byte

	// Sync persists [off, off+n) for sources backed by a file.
	// It is a no-op for anonymous sources.
	Sync(off, n int) error

	// Close releases the reservation.
	Close() error
}

// DefaultLimit is the reservation size used when callers pass 0.
const DefaultLimit = 64 << 20

func checkLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultLimit, nil
	}
	if limit < 0 || uint64(limit) > format.MaxArena {
		return 0, fmt.Errorf("%w: %d", ErrBadLimit, limit)
	}
	return limit, nil
}

func checkIncrement(brk, limit, n int) error {
	if n < 0 {
		return fmt.Errorf("vmem: negative increment %d", n)
	}
	if n > limit-brk {
		return fmt.Errorf("%w: break=%d increment=%d limit=%d", ErrNoMemory, brk, n, limit)
	}
	return nil
}
