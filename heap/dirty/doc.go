// Package dirty tracks which parts of a heap arena have been rewritten and
// flushes them to backing storage.
//
// The allocator reports every block header it writes through the
// DirtyTracker interface. A Tracker records those ranges cheaply and, when
// asked to Flush, widens them to page boundaries, merges overlapping and
// adjacent pages, and hands each resulting span to a Syncer. For a
// file-backed arena (vmem.CreateFile) the Syncer is the mapping itself, so
// Flush ends in msync; anonymous arenas accept and ignore the calls.
//
// # Usage
//
//	space, err := vmem.CreateFile(path, 1<<20)
//	if err != nil {
//		return err
//	}
//	tracker := dirty.NewTracker(space)
//	a, err := alloc.New(space, &alloc.Config{Tracker: tracker})
//	if err != nil {
//		return err
//	}
//	p := a.Malloc(128)
//	// ...
//	if err := tracker.Flush(ctx); err != nil {
//		return err
//	}
//
// # Thread Safety
//
// Tracker is NOT thread-safe, matching the single-mutator allocator it
// serves.
package dirty
