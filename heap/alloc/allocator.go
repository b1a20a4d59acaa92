package alloc

import (
	"fmt"
	"iter"
	"log/slog"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Runtime debug flag for allocation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// nilOff marks an absent block.
const nilOff uint32 = format.NilOff

// Allocator is a free-list heap over a single growing arena.
//
// The chain head, the next-fit cursor and the counters all live here, so
// independent heaps never interfere.
type Allocator struct {
	src Source
	dt  DirtyTracker
	log *slog.Logger

	strategy Strategy
	loc      locator

	head   uint32 // first block, nilOff while the arena is empty
	brk    uint32 // end of the last block; the next extension must start here
	cursor uint32 // block chosen by the previous next-fit placement

	stats Stats

	// Test hook: called after every successful grow (nil in production)
	onGrow func(off, size uint32)
}

// New creates an allocator over src, which must not have been extended yet.
//
// Parameters:
//   - src: The address space to grow into
//   - cfg: Strategy, logger and dirty tracker (use nil for DefaultConfig)
func New(src Source, cfg *Config) (*Allocator, error) {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	loc, err := newLocator(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	brk, err := src.Sbrk(0)
	if err != nil {
		return nil, fmt.Errorf("alloc: query break: %w", err)
	}
	if brk != 0 {
		return nil, fmt.Errorf("%w: break at %d", ErrSourceNotEmpty, brk)
	}

	l := cfg.Logger
	if l == nil {
		l = logger.L
	}

	return &Allocator{
		src:      src,
		dt:       cfg.Tracker,
		log:      l,
		strategy: cfg.Strategy,
		loc:      loc,
		head:     nilOff,
		cursor:   nilOff,
	}, nil
}

// Strategy returns the fit strategy chosen at construction.
func (a *Allocator) Strategy() Strategy { return a.strategy }

// Break returns the current end of the heap.
func (a *Allocator) Break() uint32 { return a.brk }

// Arena returns the raw heap bytes [0, Break()).
func (a *Allocator) Arena() []byte { return a.data() }

// Stats returns a snapshot of the usage counters.
func (a *Allocator) Stats() Stats { return a.stats }

// Payload returns the payload of the block p points at. The slice aliases
// the arena and is only valid until p is released or reallocated.
func (a *Allocator) Payload(p Ptr) []byte {
	blk := a.mustBlock(p)
	start := blk + format.HeaderSize
	end := start + a.size(blk)
	return a.data()[start:end:end]
}

// Blocks walks the chain in address order.
func (a *Allocator) Blocks() iter.Seq[BlockInfo] {
	return func(yield func(BlockInfo) bool) {
		for cur := a.head; cur != nilOff; cur = a.next(cur) {
			info := BlockInfo{
				Off:  cur,
				Ptr:  Ptr(cur + format.HeaderSize),
				Size: a.size(cur),
				Free: a.isFree(cur),
			}
			if !yield(info) {
				return
			}
		}
	}
}

func (a *Allocator) data() []byte { return a.src.Bytes() }

func (a *Allocator) debug(msg string, args ...any) {
	if logAlloc {
		a.log.Debug(msg, append([]any{"strategy", a.strategy.String()}, args...)...)
	}
}
