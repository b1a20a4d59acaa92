package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/internal/vmem"
	"github.com/joshuapare/heapkit/internal/workload"
)

var (
	compareFits   []string
	compareLimit  int
	compareNative bool
	compareBlocks int
	compareSeed   int64
)

func init() {
	cmd := newCompareCmd()
	cmd.Flags().StringSliceVar(&compareFits, "fit", nil, "Strategies to compare (default: all)")
	cmd.Flags().IntVar(&compareLimit, "limit", vmem.DefaultLimit, "Heap reservation in bytes per strategy")
	cmd.Flags().BoolVar(&compareNative, "native", true, "Include the Go runtime allocator as a baseline")
	cmd.Flags().IntVar(&compareBlocks, "blocks", workload.DefaultConfig.Blocks, "Pointer table size")
	cmd.Flags().Int64Var(&compareSeed, "seed", workload.DefaultConfig.Seed, "Seed for the random scenario")
	rootCmd.AddCommand(cmd)
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the workloads under each fit strategy side by side",
		Long: `The compare command gives every strategy a fresh heap, runs all
benchmark workloads against it, and tabulates timings and heap usage.

Example:
  heapctl compare
  heapctl compare --fit first,best --native=false
  heapctl compare --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare()
		},
	}
	return cmd
}

type compareRow struct {
	Name    string            `json:"name"`
	Results []workload.Result `json:"results"`
	Stats   *alloc.Stats      `json:"stats,omitempty"` // nil for the native baseline
}

func runCompare() error {
	strategies := alloc.Strategies()
	if len(compareFits) > 0 {
		strategies = strategies[:0:0]
		for _, name := range compareFits {
			s, err := alloc.ParseStrategy(name)
			if err != nil {
				return err
			}
			strategies = append(strategies, s)
		}
	}

	cfg := workload.Config{Blocks: compareBlocks, Seed: compareSeed}
	rows := make([]compareRow, 0, len(strategies)+1)
	for _, s := range strategies {
		printVerbose("Running %s...\n", s)
		row, err := compareStrategy(s, cfg)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}
	if compareNative {
		rows = append(rows, compareRow{
			Name:    "native",
			Results: workload.RunAll(workload.NewNative(), cfg),
		})
	}

	if jsonOut {
		return printJSON(rows)
	}
	printCompareTable(rows)
	return nil
}

func compareStrategy(s alloc.Strategy, cfg workload.Config) (compareRow, error) {
	h, err := newHeap(s, compareLimit, "")
	if err != nil {
		return compareRow{}, err
	}
	defer h.Close()

	results := workload.RunAll(h, cfg)
	st := h.Stats()
	return compareRow{Name: s.String(), Results: results, Stats: &st}, nil
}

func printCompareTable(rows []compareRow) {
	scenarios := workload.All()

	var header strings.Builder
	fmt.Fprintf(&header, "%-10s", "strategy")
	for _, s := range scenarios {
		fmt.Fprintf(&header, " %13s", s.Key)
	}
	fmt.Fprintf(&header, " %8s %8s %10s\n", "grows", "blocks", "max heap")
	printInfo("%s", header.String())

	for _, row := range rows {
		var line strings.Builder
		fmt.Fprintf(&line, "%-10s", row.Name)
		for _, r := range row.Results {
			fmt.Fprintf(&line, " %11.2fms", r.Millis())
		}
		if row.Stats != nil {
			fmt.Fprintf(&line, " %8d %8d %10d", row.Stats.Grows, row.Stats.Blocks, row.Stats.MaxHeap)
		} else {
			fmt.Fprintf(&line, " %8s %8s %10s", "-", "-", "-")
		}
		printInfo("%s\n", line.String())
	}
}
