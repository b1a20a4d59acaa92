package alloc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/vmem"
)

// ============================================================================
// Allocator Creation Utilities
// ============================================================================

// newTestAllocator returns an allocator over a fresh slice source of limit
// bytes (vmem.DefaultLimit when 0).
func newTestAllocator(t testing.TB, s Strategy, limit int) *Allocator {
	t.Helper()

	space, err := vmem.NewSlice(limit)
	require.NoError(t, err)
	t.Cleanup(func() { space.Close() })

	a, err := New(space, &Config{Strategy: s})
	require.NoError(t, err)
	return a
}

// mustMalloc allocates size bytes and fails the test on Null.
func mustMalloc(t testing.TB, a *Allocator, size uint32) Ptr {
	t.Helper()
	p := a.Malloc(size)
	require.NotEqual(t, Null, p, "Malloc(%d) returned Null", size)
	return p
}

// layout snapshots the chain.
func layout(a *Allocator) []BlockInfo {
	var out []BlockInfo
	for b := range a.Blocks() {
		out = append(out, b)
	}
	return out
}

// requireHeapValid checks every chain invariant that must hold after any
// public operation, plus agreement between the counters and the chain.
func requireHeapValid(t testing.TB, a *Allocator) {
	t.Helper()
	st := a.Stats()
	require.NoError(t, verify.AllInvariants(a.Arena(), st.MaxHeap))
	require.NoError(t, verify.BlockCount(a.Arena(), st.Blocks))
	require.Equal(t, uint64(a.Break()), st.MaxHeap)
}

// requirePanicsWith runs fn and asserts it panics with an error wrapping target.
func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %T is not an error", r)
		require.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()
	fn()
}

// ============================================================================
// Sources
// ============================================================================

// skewedSource reports a break that disagrees with the allocator once skew is set.
type skewedSource struct {
	*vmem.Slice
	skew bool
}

func (s *skewedSource) Sbrk(n int) (int, error) {
	base, err := s.Slice.Sbrk(n)
	if err != nil || !s.skew {
		return base, err
	}
	return base + 4, nil
}

// recordingTracker captures the ranges the allocator reports as dirty.
type recordingTracker struct {
	ranges [][2]int
}

func (r *recordingTracker) Add(off, length int) {
	r.ranges = append(r.ranges, [2]int{off, length})
}
