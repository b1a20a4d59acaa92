package alloc

import (
	"fmt"
	"math/bits"

	"github.com/joshuapare/heapkit/internal/format"
)

// Malloc returns a block of at least size bytes, or Null when size is zero
// or the source cannot grow.
func (a *Allocator) Malloc(size uint32) Ptr {
	p, err := a.malloc(size)
	if err != nil {
		a.debug("malloc failed", "size", size, "error", err)
		return Null
	}
	return p
}

func (a *Allocator) malloc(size uint32) (Ptr, error) {
	if size == 0 {
		return Null, ErrZeroSize
	}
	aligned, ok := format.Align4U32(size)
	if !ok {
		return Null, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}

	off, last := a.loc.locate(a, aligned)
	found := off != nilOff
	if !found {
		var err error
		if off, err = a.grow(last, aligned); err != nil {
			return Null, err
		}
	}

	if canSplit(a.size(off), aligned) {
		a.split(off, aligned)
	} else if found {
		a.stats.Reuses++
	}

	a.setFree(off, false)
	a.stats.Mallocs++
	a.stats.Requested += uint64(aligned)
	return Ptr(off + format.HeaderSize), nil
}

// Calloc returns a zeroed block for count elements of elemSize bytes. A
// product that overflows uint32 yields Null.
func (a *Allocator) Calloc(count, elemSize uint32) Ptr {
	hi, n := bits.Mul32(count, elemSize)
	if hi != 0 {
		a.debug("calloc overflow", "count", count, "elem_size", elemSize)
		return Null
	}
	p := a.Malloc(n)
	if p == Null {
		return Null
	}
	// A reused block still holds its previous contents.
	clear(a.Payload(p))
	return p
}

// Realloc resizes the block p points at.
//
// Realloc(Null, n) is Malloc(n) and Realloc(p, 0) frees p. Shrinking keeps p
// and splits off the unused tail when it can host a block; that tail is not
// merged with its neighbors until a later Free. Growing moves the contents
// to a new block and frees p; when that fails p is left intact and Null is
// returned.
func (a *Allocator) Realloc(p Ptr, size uint32) Ptr {
	if p == Null {
		return a.Malloc(size)
	}
	if size == 0 {
		a.Free(p)
		return Null
	}

	off := a.mustBlock(p)
	if a.isFree(off) {
		panic(fmt.Errorf("%w: realloc of free block 0x%X", ErrBadPtr, uint32(p)))
	}
	aligned, ok := format.Align4U32(size)
	if !ok {
		a.debug("realloc failed", "size", size, "error", ErrTooLarge)
		return Null
	}

	old := a.size(off)
	if aligned <= old {
		if canSplit(old, aligned) {
			a.split(off, aligned)
		}
		return p
	}

	np, err := a.malloc(aligned)
	if err != nil {
		a.debug("realloc failed", "size", size, "error", err)
		return Null
	}
	data := a.data()
	copy(data[np:uint32(np)+old], data[p:uint32(p)+old])
	a.Free(p)
	return np
}
