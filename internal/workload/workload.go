// Package workload reproduces the allocator benchmark harness: five fixed
// allocation patterns run against any Heap, timed individually.
package workload

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/logger"
)

// Heap is the allocation surface a scenario drives. *alloc.Allocator
// implements it, as does Native.
type Heap interface {
	Malloc(size uint32) alloc.Ptr
	Free(p alloc.Ptr)
	Realloc(p alloc.Ptr, size uint32) alloc.Ptr
}

// Config sizes the scenarios.
type Config struct {
	Blocks  int    // Pointer table size
	MinSize uint32 // Smallest random request
	MaxSize uint32 // Largest random request
	Seed    int64  // Seed for the random scenario
}

// DefaultConfig matches the classic harness.
var DefaultConfig = Config{
	Blocks:  1000,
	MinSize: 16,
	MaxSize: 1024,
	Seed:    1,
}

// Scenario is one named allocation pattern.
type Scenario struct {
	Key  string // Short name used on the command line
	Name string // Display title
	run  func(h Heap, cfg Config, rng *rand.Rand) int
}

// Result is the outcome of one scenario.
type Result struct {
	Name    string        `json:"name"`
	Elapsed time.Duration `json:"elapsed_ns"`
	Failed  int           `json:"failed"` // Requests that returned Null
}

// Millis returns Elapsed in fractional milliseconds.
func (r Result) Millis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

var scenarios = []Scenario{
	{Key: "basic", Name: "Basic Stress Test", run: basic},
	{Key: "random", Name: "Random Allocation Test", run: random},
	{Key: "sequential", Name: "Sequential Growth Test", run: sequential},
	{Key: "fragmentation", Name: "Fragmentation Test", run: fragmentation},
	{Key: "reallocation", Name: "Reallocation Stress Test", run: reallocation},
}

// All returns the scenarios in harness order.
func All() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Lookup finds a scenario by key, case-insensitively.
func Lookup(key string) (Scenario, error) {
	for _, s := range scenarios {
		if strings.EqualFold(s.Key, key) {
			return s, nil
		}
	}
	keys := make([]string, len(scenarios))
	for i, s := range scenarios {
		keys[i] = s.Key
	}
	return Scenario{}, fmt.Errorf("workload: unknown scenario %q (want one of %s)", key, strings.Join(keys, ", "))
}

// Run executes s against h.
func (s Scenario) Run(h Heap, cfg Config) Result {
	cfg = cfg.withDefaults()
	rng := rand.New(rand.NewSource(cfg.Seed))

	start := time.Now()
	failed := s.run(h, cfg, rng)
	res := Result{Name: s.Name, Elapsed: time.Since(start), Failed: failed}

	logger.Debug("workload finished", "scenario", s.Key, "elapsed", res.Elapsed, "failed", failed)
	return res
}

// RunAll executes every scenario against the same heap, in order, the way
// the harness shares one process heap between them.
func RunAll(h Heap, cfg Config) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		results = append(results, s.Run(h, cfg))
	}
	return results
}

func (c Config) withDefaults() Config {
	if c.Blocks <= 0 {
		c.Blocks = DefaultConfig.Blocks
	}
	if c.MinSize == 0 {
		c.MinSize = DefaultConfig.MinSize
	}
	if c.MaxSize < c.MinSize {
		c.MaxSize = max(DefaultConfig.MaxSize, c.MinSize)
	}
	return c
}

func (c Config) randomSize(rng *rand.Rand) uint32 {
	return uint32(rng.Int63n(int64(c.MaxSize-c.MinSize)+1)) + c.MinSize
}

// nulls counts the Null results of a batch of requests.
type nulls int

func (n *nulls) check(p alloc.Ptr) alloc.Ptr {
	if p == alloc.Null {
		*n++
	}
	return p
}
