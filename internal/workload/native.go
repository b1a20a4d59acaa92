package workload

import "github.com/joshuapare/heapkit/heap/alloc"

// Native is a Heap backed by the Go runtime allocator. It is the baseline
// the benchmark compares the free-list strategies against.
type Native struct {
	live map[alloc.Ptr][]byte
	next alloc.Ptr
}

// NewNative returns an empty baseline heap.
func NewNative() *Native {
	return &Native{live: make(map[alloc.Ptr][]byte), next: 4}
}

// Malloc implements Heap.
func (n *Native) Malloc(size uint32) alloc.Ptr {
	if size == 0 {
		return alloc.Null
	}
	p := n.next
	n.next += 4
	n.live[p] = make([]byte, size)
	return p
}

// Free implements Heap.
func (n *Native) Free(p alloc.Ptr) {
	delete(n.live, p)
}

// Realloc implements Heap.
func (n *Native) Realloc(p alloc.Ptr, size uint32) alloc.Ptr {
	if p == alloc.Null {
		return n.Malloc(size)
	}
	if size == 0 {
		n.Free(p)
		return alloc.Null
	}
	old := n.live[p]
	if int(size) <= len(old) {
		n.live[p] = old[:size]
		return p
	}
	np := n.Malloc(size)
	copy(n.live[np], old)
	n.Free(p)
	return np
}

// Live returns the number of outstanding blocks.
func (n *Native) Live() int { return len(n.live) }
