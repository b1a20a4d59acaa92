package alloc

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Free releases the block p points at and merges it with free neighbors.
//
// Free(Null) does nothing. A pointer that does not address a block panics
// with ErrBadPtr; releasing a block twice panics with ErrDoubleFree.
func (a *Allocator) Free(p Ptr) {
	if p == Null {
		return
	}
	off := a.mustBlock(p)
	if a.isFree(off) {
		panic(fmt.Errorf("%w: 0x%X", ErrDoubleFree, uint32(p)))
	}

	a.setFree(off, true)
	a.stats.Frees++
	a.coalesce(off)
}

// coalesce merges the free block at off with every free block around it.
// The successor loop matters after a shrink, which may leave a free tail
// directly followed by another free block.
func (a *Allocator) coalesce(off uint32) {
	for n := a.next(off); n != nilOff && a.isFree(n); n = a.next(off) {
		a.absorb(off, n)
	}
	for p := a.prev(off); p != nilOff && a.isFree(p); p = a.prev(off) {
		a.absorb(p, off)
		off = p
	}
}

// absorb folds victim, the chain successor of into, into it.
func (a *Allocator) absorb(into, victim uint32) {
	next := a.next(victim)
	a.setSize(into, a.size(into)+format.HeaderSize+a.size(victim))
	a.setNext(into, next)
	if next != nilOff {
		a.setPrev(next, into)
	}
	a.scrub(victim)

	if a.cursor == victim {
		a.cursor = into
	}
	a.stats.Coalesces++
	a.stats.Blocks--
}
