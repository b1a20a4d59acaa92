package alloc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalloc_Zeroed(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)

	p := a.Calloc(8, 4)
	require.NotEqual(t, Null, p)
	assert.Equal(t, make([]byte, 32), a.Payload(p))
}

func TestCalloc_ClearsReusedBlock(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)
	p := mustMalloc(t, a, 32)
	copy(a.Payload(p), bytes.Repeat([]byte{0xAA}, 32))
	mustMalloc(t, a, 4)
	a.Free(p)

	c := a.Calloc(7, 4)
	require.Equal(t, p, c)
	// The block is handed out whole, stale tail included.
	assert.Equal(t, make([]byte, 32), a.Payload(c))
}

func TestCalloc_ClearsSplitBlock(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)
	p := mustMalloc(t, a, 64)
	copy(a.Payload(p), bytes.Repeat([]byte{0xAA}, 64))
	mustMalloc(t, a, 4)
	a.Free(p)

	c := a.Calloc(4, 4)
	require.Equal(t, p, c)
	assert.Equal(t, make([]byte, 16), a.Payload(c))
	requireHeapValid(t, a)
}

func TestCalloc_Null(t *testing.T) {
	a := newTestAllocator(t, FirstFit, 0)

	assert.Equal(t, Null, a.Calloc(1<<16, 1<<16), "product overflows")
	assert.Equal(t, Null, a.Calloc(0, 8))
	assert.Equal(t, Null, a.Calloc(8, 0))
	assert.Equal(t, Stats{}, a.Stats())
}
