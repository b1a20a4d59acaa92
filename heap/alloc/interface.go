package alloc

import "github.com/joshuapare/heapkit/heap/dirty"

// DirtyTracker is a type alias for the canonical interface defined in heap/dirty.
type DirtyTracker = dirty.DirtyTracker

// Source is the address space the heap grows into. See internal/vmem for
// implementations.
type Source interface {
	// Sbrk extends the break by n bytes and returns the previous break.
	Sbrk(n int) (int, error)

	// Bytes returns the usable prefix [0, break).
	Bytes() []byte
}
