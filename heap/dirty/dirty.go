package dirty

import (
	"context"
	"fmt"
	"sort"
)

const (
	// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
	defaultRangeCapacity = 64

	// DefaultPageSize is the flush granularity used by NewTracker.
	DefaultPageSize = 4096
)

var _ FlushableTracker = (*Tracker)(nil)

// Range is a dirty byte range in arena offsets.
type Range struct {
	Off int64
	Len int64
}

// End returns the offset just past the range.
func (r Range) End() int64 { return r.Off + r.Len }

// Tracker accumulates dirty ranges and flushes them efficiently.
//
// NOT thread-safe. Only one goroutine should use it at a time.
type Tracker struct {
	s        Syncer
	ranges   []Range // Raw ranges, coalesced at flush time
	pageSize int64
	flushed  int // Spans handed to the syncer since creation
}

// NewTracker creates a tracker that flushes through s.
func NewTracker(s Syncer) *Tracker {
	return NewTrackerWithPageSize(s, DefaultPageSize)
}

// NewTrackerWithPageSize is NewTracker with an explicit flush granularity.
// pageSize must be a positive power of two.
func NewTrackerWithPageSize(s Syncer, pageSize int) *Tracker {
	if pageSize <= 0 || pageSize&(pageSize-1) != 0 {
		panic(fmt.Sprintf("dirty: page size %d is not a positive power of two", pageSize))
	}
	return &Tracker{
		s:        s,
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: int64(pageSize),
	}
}

// Add records a dirty range. Empty and negative ranges are ignored.
//
// Performance: an append, zero allocations after initial capacity.
func (t *Tracker) Add(off, length int) {
	if length <= 0 || off < 0 {
		return
	}
	t.ranges = append(t.ranges, Range{
		Off: int64(off),
		Len: int64(length),
	})
}

// Len returns the number of raw ranges recorded since the last flush.
func (t *Tracker) Len() int { return len(t.ranges) }

// Ranges returns a copy of the raw ranges recorded since the last flush.
func (t *Tracker) Ranges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}

// Coalesced returns the page-aligned spans the next Flush would sync.
func (t *Tracker) Coalesced() []Range { return t.coalesce() }

// Flushed returns the number of spans synced over the tracker's lifetime.
func (t *Tracker) Flushed() int { return t.flushed }

// Reset drops every recorded range without syncing.
func (t *Tracker) Reset() { t.ranges = t.ranges[:0] }

// Flush syncs every coalesced span and clears the recorded ranges.
//
// The context is checked before each span. If cancelled midway, some spans
// have been synced and the ranges are kept, so a later Flush retries them.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.s.Sync(int(r.Off), int(r.Len)); err != nil {
			return fmt.Errorf("dirty: sync [0x%X, 0x%X): %w", r.Off, r.End(), err)
		}
		t.flushed++
	}

	t.ranges = t.ranges[:0]
	return nil
}

// coalesce page-aligns all ranges, sorts them, and merges overlapping/adjacent ranges.
//
// Returns a new slice of non-overlapping, sorted ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		// Round down start, round up end
		start := r.Off &^ (t.pageSize - 1)
		end := (r.End() + t.pageSize - 1) &^ (t.pageSize - 1)
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.End() {
			current.Len = max(current.End(), next.End()) - current.Off
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
