package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanSplit(t *testing.T) {
	tests := []struct {
		old, size uint32
		want      bool
	}{
		{100, 80, true},  // remainder of 4 bytes
		{100, 84, false}, // remainder would be header only
		{32, 32, false},
		{32, 16, false},
		{36, 16, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canSplit(tt.old, tt.size), "canSplit(%d, %d)", tt.old, tt.size)
	}
}

func TestSplit_OnReuse(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)
	p := mustMalloc(t, a, 100)
	mustMalloc(t, a, 4)
	a.Free(p)

	q := mustMalloc(t, a, 40)
	require.Equal(t, p, q)

	assert.Equal(t, []BlockInfo{
		{Off: 0, Ptr: 16, Size: 40, Free: false},
		{Off: 56, Ptr: 72, Size: 44, Free: true},
		{Off: 116, Ptr: 132, Size: 4, Free: false},
	}, layout(a))

	st := a.Stats()
	assert.Equal(t, 1, st.Splits)
	assert.Equal(t, 3, st.Blocks)
	assert.Zero(t, st.Reuses, "a split block is not a plain reuse")
	requireHeapValid(t, a)
}

func TestSplit_SmallRemainderKeepsBlockWhole(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)
	p := mustMalloc(t, a, 100)
	mustMalloc(t, a, 4)
	a.Free(p)

	q := mustMalloc(t, a, 84)
	require.Equal(t, p, q)
	assert.Len(t, a.Payload(q), 100)

	st := a.Stats()
	assert.Zero(t, st.Splits)
	assert.Equal(t, 1, st.Reuses)
	assert.Equal(t, uint64(4+100+84), st.Requested)
	requireHeapValid(t, a)
}

func TestSplit_MinimalRemainder(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)
	p := mustMalloc(t, a, 100)
	mustMalloc(t, a, 4)
	a.Free(p)

	mustMalloc(t, a, 80)
	blocks := layout(a)
	require.Len(t, blocks, 3)
	assert.Equal(t, uint32(4), blocks[1].Size)
	assert.True(t, blocks[1].Free)
}
