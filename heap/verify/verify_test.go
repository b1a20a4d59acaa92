package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// buildImage lays out blocks back to back with consistent links.
func buildImage(t *testing.T, sizes []uint32, free []bool) []byte {
	t.Helper()
	require.Len(t, free, len(sizes))

	var total int
	for _, s := range sizes {
		total += format.HeaderSize + int(s)
	}
	data := make([]byte, total)

	off, prev := uint32(0), uint32(format.NilOff)
	for i, s := range sizes {
		next := off + format.HeaderSize + s
		if i == len(sizes)-1 {
			next = format.NilOff
		}
		format.PutBlock(data, format.Block{Offset: off, Size: s, Next: next, Prev: prev, Free: free[i]})
		prev, off = off, off+format.HeaderSize+s
	}
	return data
}

func asValidation(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)
	return verr
}

func TestChain_Valid(t *testing.T) {
	data := buildImage(t, []uint32{32, 64, 4}, []bool{false, true, false})
	require.NoError(t, Chain(data))
	require.NoError(t, AllInvariants(data, uint64(len(data))))
	require.NoError(t, Strict(data, uint64(len(data))))
}

func TestChain_Empty(t *testing.T) {
	require.NoError(t, Chain(nil))
	require.NoError(t, Conservation(nil, 0))
}

func TestChain_BadMagic(t *testing.T) {
	data := buildImage(t, []uint32{32, 64}, []bool{false, false})
	format.PutU32(data, 48+format.FlagsOffset, 0)

	verr := asValidation(t, Chain(data))
	require.Equal(t, "Chain", verr.Type)
	require.Equal(t, 48, verr.Offset)
	require.Contains(t, verr.Message, "bad magic")
}

func TestChain_Misaligned(t *testing.T) {
	data := buildImage(t, []uint32{32}, []bool{false})
	format.PutU32(data, format.SizeOffset, 31)

	verr := asValidation(t, Chain(data))
	require.Contains(t, verr.Message, "aligned")
}

func TestChain_PrevMismatch(t *testing.T) {
	data := buildImage(t, []uint32{32, 64}, []bool{false, false})
	format.PutU32(data, 48+format.PrevOffset, 0x10)

	verr := asValidation(t, Chain(data))
	require.Contains(t, verr.Message, "prev link mismatch")
	require.Equal(t, uint32(0), verr.Details["expected"])
}

func TestChain_NextMismatch(t *testing.T) {
	data := buildImage(t, []uint32{32, 64}, []bool{false, false})
	format.PutU32(data, format.NextOffset, 0x40)

	verr := asValidation(t, Chain(data))
	require.Contains(t, verr.Message, "next link mismatch")
	require.Equal(t, 0, verr.Offset)
}

func TestChain_TailLinks(t *testing.T) {
	data := buildImage(t, []uint32{32}, []bool{false})
	format.PutU32(data, format.NextOffset, 48)

	verr := asValidation(t, Chain(data))
	require.Contains(t, verr.Message, "tail block links")
}

func TestChain_Overrun(t *testing.T) {
	data := buildImage(t, []uint32{32}, []bool{false})
	format.PutU32(data, format.SizeOffset, 64)

	verr := asValidation(t, Chain(data))
	require.Contains(t, verr.Message, "overruns")
}

func TestNoAdjacentFree(t *testing.T) {
	data := buildImage(t, []uint32{32, 8, 64}, []bool{false, true, true})
	require.NoError(t, AllInvariants(data, uint64(len(data))))

	verr := asValidation(t, NoAdjacentFree(data))
	require.Equal(t, "NoAdjacentFree", verr.Type)
	require.Equal(t, 72, verr.Offset)

	require.Error(t, Strict(data, uint64(len(data))))
}

func TestConservation(t *testing.T) {
	data := buildImage(t, []uint32{32, 64}, []bool{false, false})
	require.NoError(t, Conservation(data, 128))

	verr := asValidation(t, Conservation(data, 112))
	require.Equal(t, "Conservation", verr.Type)
	require.Equal(t, -1, verr.Offset)
	require.Contains(t, verr.Error(), "chain covers 128 bytes")
}

func TestBlockCount(t *testing.T) {
	data := buildImage(t, []uint32{32, 64, 8}, []bool{false, true, false})
	require.NoError(t, BlockCount(data, 3))
	require.Error(t, BlockCount(data, 2))
}

func TestSummarize(t *testing.T) {
	data := buildImage(t, []uint32{32, 8, 64, 16}, []bool{false, true, true, false})

	s, err := Summarize(data)
	require.NoError(t, err)
	require.Equal(t, Summary{
		Blocks:       4,
		Used:         2,
		Free:         2,
		UsedBytes:    48,
		FreeBytes:    72,
		LargestFree:  64,
		AdjacentFree: 1,
		HeapBytes:    uint64(len(data)),
	}, s)
	require.InDelta(t, 1-64.0/72.0, s.Fragmentation(), 1e-9)

	require.Zero(t, Summary{}.Fragmentation())
}
