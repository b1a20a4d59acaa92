package alloc

import (
	"fmt"
	"log/slog"
	"strings"
)

// Ptr is the arena offset of a block payload.
type Ptr uint32

// Null is the failure sentinel returned by the allocation routines.
const Null Ptr = 0

// Strategy selects how the allocator picks a free block for a request.
type Strategy uint8

const (
	FirstFit Strategy = iota
	BestFit
	WorstFit
	NextFit
)

var strategyNames = [...]string{
	FirstFit: "first_fit",
	BestFit:  "best_fit",
	WorstFit: "worst_fit",
	NextFit:  "next_fit",
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{FirstFit, BestFit, WorstFit, NextFit}
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("alloc: unknown strategy %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	v, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStrategy accepts "first", "first_fit", "first-fit", "firstfit" and the
// equivalents for best, worst and next, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("-", "", "_", "").Replace(n)
	n = strings.TrimSuffix(n, "fit")
	switch n {
	case "first":
		return FirstFit, nil
	case "best":
		return BestFit, nil
	case "worst":
		return WorstFit, nil
	case "next":
		return NextFit, nil
	}
	return 0, fmt.Errorf("alloc: unknown strategy %q (want first, best, worst or next)", name)
}

// Config configures a new Allocator.
type Config struct {
	// Strategy selects the block locator.
	Strategy Strategy

	// Logger receives debug records when HEAPKIT_LOG_ALLOC is set.
	// Nil means logger.L.
	Logger *slog.Logger

	// Tracker is told about every header write. May be nil.
	Tracker DirtyTracker
}

// DefaultConfig is used when New receives a nil config.
var DefaultConfig = Config{Strategy: FirstFit}

// BlockInfo describes one block of the chain.
type BlockInfo struct {
	Off  uint32 // Arena offset of the header
	Ptr  Ptr    // Payload pointer
	Size uint32 // Payload size
	Free bool
}
