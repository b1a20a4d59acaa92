package alloc

import "github.com/joshuapare/heapkit/internal/format"

// canSplit reports whether a block of old payload bytes can give up a tail
// that holds a header and at least MinPayload bytes after keeping size.
func canSplit(old, size uint32) bool {
	return old > size+format.HeaderSize
}

// split shrinks the block at off to size bytes and turns the rest into a
// free block linked right after it. The caller checks canSplit first.
func (a *Allocator) split(off, size uint32) {
	old := a.size(off)
	next := a.next(off)
	rest := off + format.HeaderSize + size

	a.writeBlock(format.Block{
		Offset: rest,
		Size:   old - size - format.HeaderSize,
		Next:   next,
		Prev:   off,
		Free:   true,
	})
	if next != nilOff {
		a.setPrev(next, rest)
	}
	a.setNext(off, rest)
	a.setSize(off, size)

	a.stats.Splits++
	a.stats.Blocks++
	a.debug("split", "off", off, "size", size, "rest", rest, "rest_size", old-size-format.HeaderSize)
}
