// Package alloc implements an explicit free-list heap allocator over a single
// contiguous arena that grows on demand, like a process heap grows with sbrk.
//
// # Overview
//
// Every block in the arena starts with a 16-byte header (see
// internal/format) followed by its payload. All blocks, free and used, are
// linked into one doubly-linked chain in ascending address order. There is no
// separate free list: the fit strategies scan the whole chain.
//
// # Allocator Interface
//
// The four classic dynamic-memory routines are methods on *Allocator:
//
//   - Malloc(size): allocate size bytes (rounded up to a multiple of 4)
//   - Free(p): release a block and coalesce it with free neighbors
//   - Calloc(count, size): allocate and zero count*size bytes
//   - Realloc(p, size): shrink in place or move to a larger block
//
// Pointers are arena offsets of payloads (Ptr). Null (0) is the failure
// sentinel; no payload can live at offset 0 because a header precedes it.
//
// # Fit Strategies
//
// The strategy is chosen when the allocator is constructed:
//
//	FirstFit  first free block large enough (default)
//	BestFit   smallest free block large enough, first one on ties
//	WorstFit  largest free block large enough, first one on ties
//	NextFit   like FirstFit, resuming after the previous placement
//
// # Usage Example
//
//	src, err := vmem.Reserve(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	a, err := alloc.New(src, &alloc.Config{Strategy: alloc.BestFit})
//	if err != nil {
//	    return err
//	}
//
//	p := a.Malloc(64)
//	if p == alloc.Null {
//	    return errors.New("out of memory")
//	}
//	copy(a.Payload(p), "hello")
//	a.Free(p)
//
// # Growth
//
// When no free block fits, the allocator extends the source by exactly
// HeaderSize+size bytes and appends a new tail block. A denied extension
// makes the call return Null without touching the chain. An extension that
// does not start at the previous break means another party moved the break;
// that is unrecoverable and panics with ErrNonContiguous.
//
// # Fatal Conditions
//
// Releasing a block twice (ErrDoubleFree) or passing a pointer that does not
// address a block (ErrBadPtr) panics: the heap can no longer be trusted.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
//
// # Related Packages
//
//   - github.com/joshuapare/heapkit/internal/vmem: address-space sources
//   - github.com/joshuapare/heapkit/heap/verify: chain invariant checks
//   - github.com/joshuapare/heapkit/heap/report: exit-time statistics report
package alloc
