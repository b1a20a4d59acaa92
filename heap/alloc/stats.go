package alloc

// Stats holds the usage counters of an Allocator.
type Stats struct {
	Mallocs   int    `json:"mallocs"`   // Successful allocations
	Frees     int    `json:"frees"`     // Releases
	Reuses    int    `json:"reuses"`    // Located blocks handed out without a split
	Grows     int    `json:"grows"`     // Successful heap extensions
	Splits    int    `json:"splits"`    // Block splits, including realloc shrinks
	Coalesces int    `json:"coalesces"` // Blocks absorbed into a neighbor
	Blocks    int    `json:"blocks"`    // Blocks currently on the chain
	Requested uint64 `json:"requested"` // Cumulative aligned request bytes
	MaxHeap   uint64 `json:"max_heap"`  // Bytes obtained from the source, headers included
}

// Live returns the number of blocks handed out and not yet released.
func (s Stats) Live() int { return s.Mallocs - s.Frees }
