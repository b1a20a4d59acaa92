package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// holeyHeap allocates the given hole sizes, each followed by a 4-byte guard,
// then frees the holes. Guards keep the holes from coalescing.
func holeyHeap(t *testing.T, s Strategy, holes ...uint32) (*Allocator, []Ptr) {
	t.Helper()
	a := newTestAllocator(t, s, 0)
	ptrs := make([]Ptr, len(holes))
	for i, h := range holes {
		ptrs[i] = mustMalloc(t, a, h)
		mustMalloc(t, a, 4)
	}
	for _, p := range ptrs {
		a.Free(p)
	}
	requireHeapValid(t, a)
	return a, ptrs
}

func TestLocate_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		holes    []uint32
		request  uint32
		want     int // index of the chosen hole
	}{
		{"first fit takes first qualifying", FirstFit, []uint32{16, 64, 32, 128}, 24, 1},
		{"best fit takes smallest", BestFit, []uint32{64, 32, 128, 40}, 24, 1},
		{"best fit tie goes to first", BestFit, []uint32{64, 32, 128, 32}, 24, 1},
		{"best fit exact match", BestFit, []uint32{64, 24, 128}, 24, 1},
		{"worst fit takes largest", WorstFit, []uint32{64, 32, 128, 40}, 24, 2},
		{"worst fit tie goes to first", WorstFit, []uint32{128, 32, 128}, 24, 0},
		{"next fit wraps to head", NextFit, []uint32{64, 32, 128}, 24, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, holes := holeyHeap(t, tt.strategy, tt.holes...)
			grows := a.Stats().Grows

			p := mustMalloc(t, a, tt.request)
			assert.Equal(t, holes[tt.want], p)
			assert.Equal(t, grows, a.Stats().Grows, "a qualifying hole must not grow the heap")
			requireHeapValid(t, a)
		})
	}
}

func TestLocate_MissGrowsAfterTail(t *testing.T) {
	for _, s := range Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			a, _ := holeyHeap(t, s, 16, 32)
			brk := a.Break()

			p := mustMalloc(t, a, 64)
			assert.Equal(t, Ptr(brk+16), p)
			assert.Equal(t, 5, a.Stats().Grows)

			blocks := layout(a)
			last := blocks[len(blocks)-1]
			assert.Equal(t, brk, last.Off)
			requireHeapValid(t, a)
		})
	}
}

func TestLocate_EmptyChain(t *testing.T) {
	for _, s := range Strategies() {
		a := newTestAllocator(t, s, 0)
		found, last := a.loc.locate(a, 4)
		assert.Equal(t, nilOff, found, s.String())
		assert.Equal(t, nilOff, last, s.String())
	}
}

func TestNextFit_CursorAdvances(t *testing.T) {
	// Three equal holes; each allocate/free cycle must move on
	// to the next hole instead of restarting at the head.
	a, holes := holeyHeap(t, NextFit, 32, 32, 32)

	for cycle := range 4 {
		p := mustMalloc(t, a, 32)
		assert.Equal(t, holes[cycle%3], p, "cycle %d", cycle)
		a.Free(p)
		requireHeapValid(t, a)
	}
	assert.Equal(t, 4, a.Stats().Reuses)
}

func TestFirstFit_RestartsAtHead(t *testing.T) {
	a, holes := holeyHeap(t, FirstFit, 32, 32, 32)

	for range 3 {
		p := mustMalloc(t, a, 32)
		assert.Equal(t, holes[0], p)
		a.Free(p)
	}
}

func TestNextFit_GrowthLeavesCursor(t *testing.T) {
	a := newTestAllocator(t, NextFit, 0)
	hole := mustMalloc(t, a, 32)
	mustMalloc(t, a, 4)
	b := mustMalloc(t, a, 64)
	require.Equal(t, nilOff, a.cursor, "grown blocks are not search results")

	a.Free(hole)
	require.Equal(t, b, a.Realloc(b, 16))
	tail := layout(a)[3]
	require.True(t, tail.Free)

	// No search has succeeded yet, so the scan starts at the head and
	// finds the hole before the shrink tail.
	p := mustMalloc(t, a, 16)
	assert.Equal(t, hole, p)
	assert.NotEqual(t, tail.Ptr, p)
	assert.Equal(t, 1, a.Stats().Reuses)
	assert.Equal(t, uint32(hole)-16, a.cursor)
	requireHeapValid(t, a)
}

func TestNextFit_CursorFollowsCoalesce(t *testing.T) {
	a := newTestAllocator(t, NextFit, 0)
	p := mustMalloc(t, a, 32) // block 0
	q := mustMalloc(t, a, 32) // block 48
	mustMalloc(t, a, 4)       // guard

	a.Free(q)
	q2 := mustMalloc(t, a, 32) // wraps to head, skips p, lands on q
	require.Equal(t, q, q2)
	require.Equal(t, uint32(48), a.cursor)

	a.Free(p)
	a.Free(q) // absorbed into p
	assert.Equal(t, uint32(0), a.cursor, "cursor must move to the absorbing block")

	r := mustMalloc(t, a, 32)
	assert.Equal(t, p, r)
	requireHeapValid(t, a)
}
