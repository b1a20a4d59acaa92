package dirty

import "context"

// DirtyTracker is the minimal interface for tracking dirty (modified) byte ranges.
// Implementations track which regions of an arena have been modified and may
// need to be persisted.
//
// This interface is intended for components that only need to notify about dirty regions
// but don't manage flushing themselves (e.g., the allocator).
type DirtyTracker interface {
	// Add marks a byte range as dirty.
	// off is the offset from the start of the arena, length is the number of bytes.
	Add(off, length int)
}

// Syncer persists a byte range of an arena. vmem spaces implement it.
type Syncer interface {
	Sync(off, n int) error
}

// FlushableTracker extends DirtyTracker with flushing.
type FlushableTracker interface {
	DirtyTracker

	// Flush persists every recorded range and forgets them.
	Flush(ctx context.Context) error
}
