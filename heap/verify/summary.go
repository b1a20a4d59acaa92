package verify

import "github.com/joshuapare/heapkit/internal/format"

// Summary aggregates a chain for display.
type Summary struct {
	Blocks       int    `json:"blocks"`
	Used         int    `json:"used"`
	Free         int    `json:"free"`
	UsedBytes    uint64 `json:"used_bytes"`
	FreeBytes    uint64 `json:"free_bytes"`
	LargestFree  uint32 `json:"largest_free"`
	AdjacentFree int    `json:"adjacent_free"` // Pairs awaiting coalescing
	HeapBytes    uint64 `json:"heap_bytes"`
}

// Summarize walks data and tallies its blocks.
func Summarize(data []byte) (Summary, error) {
	blocks, err := Walk(data)
	if err != nil {
		return Summary{}, err
	}
	var s Summary
	for i, b := range blocks {
		s.Blocks++
		s.HeapBytes += format.HeaderSize + uint64(b.Size)
		if !b.Free {
			s.Used++
			s.UsedBytes += uint64(b.Size)
			continue
		}
		s.Free++
		s.FreeBytes += uint64(b.Size)
		s.LargestFree = max(s.LargestFree, b.Size)
		if i > 0 && blocks[i-1].Free {
			s.AdjacentFree++
		}
	}
	return s, nil
}

// Fragmentation returns 1 - largest/total over free bytes, 0 with no free space.
func (s Summary) Fragmentation() float64 {
	if s.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(s.LargestFree)/float64(s.FreeBytes)
}
