package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Header field accessors. Blocks are addressed by the arena offset of their
// header; every write is reported to the dirty tracker.

func (a *Allocator) size(off uint32) uint32 {
	return format.ReadU32(a.data(), int(off)+format.SizeOffset)
}

func (a *Allocator) next(off uint32) uint32 {
	return format.ReadU32(a.data(), int(off)+format.NextOffset)
}

func (a *Allocator) prev(off uint32) uint32 {
	return format.ReadU32(a.data(), int(off)+format.PrevOffset)
}

func (a *Allocator) isFree(off uint32) bool {
	return format.ReadU32(a.data(), int(off)+format.FlagsOffset)&format.FlagFree != 0
}

func (a *Allocator) setSize(off, v uint32) { a.put(off, format.SizeOffset, v) }

func (a *Allocator) setNext(off, v uint32) { a.put(off, format.NextOffset, v) }

func (a *Allocator) setPrev(off, v uint32) { a.put(off, format.PrevOffset, v) }

func (a *Allocator) setFree(off uint32, free bool) {
	a.put(off, format.FlagsOffset, format.Flags(free))
}

func (a *Allocator) put(off uint32, field int, v uint32) {
	format.PutU32(a.data(), int(off)+field, v)
	a.touch(off)
}

// writeBlock initializes a whole header.
func (a *Allocator) writeBlock(b format.Block) {
	format.PutBlock(a.data(), b)
	a.touch(b.Offset)
}

// scrub clears the magic of a header that no longer starts a block, so a
// stale pointer into an absorbed block is rejected instead of trusted.
func (a *Allocator) scrub(off uint32) {
	format.PutU32(a.data(), int(off)+format.FlagsOffset, 0)
	a.touch(off)
}

func (a *Allocator) touch(off uint32) {
	if a.dt != nil {
		a.dt.Add(int(off), format.HeaderSize)
	}
}

// blockOf maps a payload pointer back to its header.
func (a *Allocator) blockOf(p Ptr) (uint32, error) {
	if uint32(p) < format.HeaderSize || uint32(p) >= a.brk || !format.IsAligned(uint32(p)) {
		return nilOff, fmt.Errorf("%w: 0x%X outside heap [0, 0x%X)", ErrBadPtr, uint32(p), a.brk)
	}
	off := uint32(p) - format.HeaderSize
	if _, err := format.ReadBlock(a.data(), off); err != nil {
		return nilOff, fmt.Errorf("%w: 0x%X: %w", ErrBadPtr, uint32(p), err)
	}
	return off, nil
}

// mustBlock is blockOf for paths where a bad pointer means the heap is
// already corrupt.
func (a *Allocator) mustBlock(p Ptr) uint32 {
	off, err := a.blockOf(p)
	if err != nil {
		panic(err)
	}
	return off
}
