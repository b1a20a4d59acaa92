package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// grow extends the source by exactly one header plus size bytes and links a
// used block after last (nilOff when the chain is empty).
//
// A denied extension leaves the chain and counters untouched.
func (a *Allocator) grow(last, size uint32) (uint32, error) {
	total := uint64(format.HeaderSize) + uint64(size)
	if uint64(a.brk)+total >= format.MaxArena {
		return nilOff, fmt.Errorf("%w: %d bytes past break 0x%X", ErrTooLarge, total, a.brk)
	}

	base, err := a.src.Sbrk(int(total))
	if err != nil {
		a.debug("grow denied", "bytes", total, "brk", a.brk, "error", err)
		return nilOff, fmt.Errorf("%w: %d bytes: %w", ErrGrowFail, total, err)
	}
	if base != int(a.brk) {
		panic(fmt.Errorf("%w: expected break 0x%X, source returned 0x%X", ErrNonContiguous, a.brk, base))
	}

	off := a.brk
	a.brk += uint32(total)
	a.writeBlock(format.Block{
		Offset: off,
		Size:   size,
		Next:   nilOff,
		Prev:   last,
	})
	if last == nilOff {
		a.head = off
	} else {
		a.setNext(last, off)
	}

	a.stats.Grows++
	a.stats.Blocks++
	a.stats.MaxHeap += total

	a.debug("grow", "off", off, "size", size, "brk", a.brk)
	if a.onGrow != nil {
		a.onGrow(off, size)
	}
	return off, nil
}
