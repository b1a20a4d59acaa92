package alloc

import "fmt"

// locator picks a free block of at least size bytes. It returns the block
// (nilOff when none qualifies) and the last block visited before it; on a
// miss that is the chain tail, which the grower appends after.
type locator interface {
	locate(a *Allocator, size uint32) (found, last uint32)
}

func newLocator(s Strategy) (locator, error) {
	switch s {
	case FirstFit:
		return firstFit{}, nil
	case BestFit:
		return bestFit{}, nil
	case WorstFit:
		return worstFit{}, nil
	case NextFit:
		return nextFit{}, nil
	}
	return nil, fmt.Errorf("alloc: unknown strategy %d", uint8(s))
}

func (a *Allocator) fits(off, size uint32) bool {
	return a.isFree(off) && a.size(off) >= size
}

type firstFit struct{}

func (firstFit) locate(a *Allocator, size uint32) (uint32, uint32) {
	last := nilOff
	for cur := a.head; cur != nilOff; cur = a.next(cur) {
		if a.fits(cur, size) {
			return cur, last
		}
		last = cur
	}
	return nilOff, last
}

type bestFit struct{}

func (bestFit) locate(a *Allocator, size uint32) (uint32, uint32) {
	best, last := nilOff, nilOff
	var bestSize uint32
	for cur := a.head; cur != nilOff; cur = a.next(cur) {
		if a.fits(cur, size) {
			if s := a.size(cur); best == nilOff || s < bestSize {
				best, bestSize = cur, s
			}
		}
		last = cur
	}
	return best, last
}

type worstFit struct{}

func (worstFit) locate(a *Allocator, size uint32) (uint32, uint32) {
	worst, last := nilOff, nilOff
	var worstSize uint32
	for cur := a.head; cur != nilOff; cur = a.next(cur) {
		if a.fits(cur, size) {
			if s := a.size(cur); worst == nilOff || s > worstSize {
				worst, worstSize = cur, s
			}
		}
		last = cur
	}
	return worst, last
}

// nextFit scans circularly from the block after the cursor and stops when
// it arrives back where it started.
type nextFit struct{}

func (nextFit) locate(a *Allocator, size uint32) (uint32, uint32) {
	if a.head == nilOff {
		return nilOff, nilOff
	}
	start := a.head
	if a.cursor != nilOff {
		if n := a.next(a.cursor); n != nilOff {
			start = n
		}
	}

	last, tail := nilOff, nilOff
	for cur := start; ; {
		if a.fits(cur, size) {
			a.cursor = cur
			return cur, last
		}
		last = cur
		n := a.next(cur)
		if n == nilOff {
			tail = cur
			n = a.head
		}
		if n == start {
			break
		}
		cur = n
	}
	return nilOff, tail
}
