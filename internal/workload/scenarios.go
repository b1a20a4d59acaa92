package workload

import (
	"math/rand"

	"github.com/joshuapare/heapkit/heap/alloc"
)

// basic allocates fixed 32-byte blocks, frees every other one, then refills
// half the table.
func basic(h Heap, cfg Config, _ *rand.Rand) int {
	var failed nulls
	blocks := make([]alloc.Ptr, cfg.Blocks)
	for i := range blocks {
		blocks[i] = failed.check(h.Malloc(32))
	}
	for i := 0; i < len(blocks); i += 2 {
		h.Free(blocks[i])
	}
	for i := 0; i < len(blocks)/2; i++ {
		blocks[i] = failed.check(h.Malloc(32))
	}
	return int(failed)
}

// random allocates random sizes, frees a random half, then allocates again.
func random(h Heap, cfg Config, rng *rand.Rand) int {
	var failed nulls
	blocks := make([]alloc.Ptr, cfg.Blocks)
	for i := range blocks {
		blocks[i] = failed.check(h.Malloc(cfg.randomSize(rng)))
	}
	for i := range blocks {
		if rng.Intn(2) == 0 {
			h.Free(blocks[i])
			blocks[i] = alloc.Null
		}
	}
	for i := 0; i < len(blocks)/2; i++ {
		blocks[i] = failed.check(h.Malloc(cfg.randomSize(rng)))
	}
	return int(failed)
}

// sequential doubles the request size from MinSize, wrapping past MaxSize.
func sequential(h Heap, cfg Config, _ *rand.Rand) int {
	var failed nulls
	size := cfg.MinSize
	for range cfg.Blocks {
		failed.check(h.Malloc(size))
		size *= 2
		if size > cfg.MaxSize {
			size = cfg.MinSize
		}
	}
	return int(failed)
}

// fragmentation punches holes between small blocks and then asks for a
// second large block that none of the holes can hold.
func fragmentation(h Heap, cfg Config, _ *rand.Rand) int {
	var failed nulls
	large := uint32(512 * cfg.Blocks)

	first := failed.check(h.Malloc(large))
	small := make([]alloc.Ptr, cfg.Blocks)
	for i := range small {
		small[i] = failed.check(h.Malloc(32))
	}
	for i := 0; i < len(small); i += 2 {
		h.Free(small[i])
	}
	second := failed.check(h.Malloc(large))

	h.Free(first)
	h.Free(second)
	return int(failed)
}

// reallocation grows every other 64-byte block to 128 bytes, then frees all.
func reallocation(h Heap, cfg Config, _ *rand.Rand) int {
	var failed nulls
	blocks := make([]alloc.Ptr, cfg.Blocks)
	for i := range blocks {
		blocks[i] = failed.check(h.Malloc(64))
	}
	for i := 0; i < len(blocks); i += 2 {
		if p := failed.check(h.Realloc(blocks[i], 128)); p != alloc.Null {
			blocks[i] = p
		}
	}
	for _, p := range blocks {
		h.Free(p)
	}
	return int(failed)
}
