package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/report"
	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/vmem"
	"github.com/joshuapare/heapkit/internal/workload"
)

var (
	benchFit      string
	benchLimit    int
	benchImage    string
	benchScenario string
	benchBlocks   int
	benchSeed     int64
	benchHuman    bool
	benchLang     string
	benchCheck    bool
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().StringVar(&benchFit, "fit", "first", "Fit strategy: first, best, worst or next")
	cmd.Flags().IntVar(&benchLimit, "limit", vmem.DefaultLimit, "Heap reservation in bytes")
	cmd.Flags().StringVar(&benchImage, "image", "", "Back the heap with this file and keep it after the run")
	cmd.Flags().StringVar(&benchScenario, "scenario", "", "Run a single scenario (basic, random, sequential, fragmentation, reallocation)")
	cmd.Flags().IntVar(&benchBlocks, "blocks", workload.DefaultConfig.Blocks, "Pointer table size")
	cmd.Flags().Int64Var(&benchSeed, "seed", workload.DefaultConfig.Seed, "Seed for the random scenario")
	cmd.Flags().BoolVar(&benchHuman, "human", false, "Print statistics with digit grouping")
	cmd.Flags().StringVar(&benchLang, "lang", "en", "Language tag for --human")
	cmd.Flags().BoolVar(&benchCheck, "check", false, "Validate the chain after the run")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the benchmark workloads and print heap statistics",
		Long: `The bench command runs the five benchmark workloads against one heap,
timing each, and finishes with the heap management statistics report.

Example:
  heapctl bench
  heapctl bench --fit best --scenario fragmentation
  heapctl bench --fit next --image heap.img
  heapctl bench --human --lang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd.Context())
		},
	}
	return cmd
}

type benchOutput struct {
	Strategy alloc.Strategy    `json:"strategy"`
	Results  []workload.Result `json:"results"`
	Stats    alloc.Stats       `json:"stats"`
	Image    string            `json:"image,omitempty"`
}

func runBench(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	strategy, err := alloc.ParseStrategy(benchFit)
	if err != nil {
		return err
	}
	scenarios := workload.All()
	if benchScenario != "" {
		s, err := workload.Lookup(benchScenario)
		if err != nil {
			return err
		}
		scenarios = []workload.Scenario{s}
	}

	h, err := newHeap(strategy, benchLimit, benchImage)
	if err != nil {
		return err
	}
	defer h.Close()

	printVerbose("Strategy: %s, limit: %d bytes\n", strategy, benchLimit)

	cfg := workload.Config{Blocks: benchBlocks, Seed: benchSeed}
	out := benchOutput{Strategy: strategy, Image: benchImage}
	for _, s := range scenarios {
		if !jsonOut {
			printInfo("\n--- %s ---\n", s.Name)
		}
		r := s.Run(h, cfg)
		out.Results = append(out.Results, r)
		if jsonOut {
			continue
		}
		printInfo("Elapsed time: %.2f milliseconds\n", r.Millis())
		if r.Failed > 0 {
			if s.Key == "fragmentation" {
				printInfo("Fragmentation prevented allocation of new large block.\n")
			} else {
				printInfo("Failed requests: %d\n", r.Failed)
			}
		}
	}
	out.Stats = h.Stats()

	if benchCheck {
		if err := verify.AllInvariants(h.Arena(), out.Stats.MaxHeap); err != nil {
			return fmt.Errorf("heap check failed: %w", err)
		}
		printVerbose("Heap check passed\n")
	}

	if h.tracker != nil {
		if err := h.tracker.Flush(ctx); err != nil {
			return fmt.Errorf("failed to flush image: %w", err)
		}
		printVerbose("Image written: %s (%d bytes)\n", benchImage, h.Break())
	}

	switch {
	case jsonOut:
		return printJSON(out)
	case quiet:
		return nil
	case benchHuman:
		tag, err := language.Parse(benchLang)
		if err != nil {
			return fmt.Errorf("invalid --lang: %w", err)
		}
		fmt.Fprintln(os.Stdout)
		return report.WriteHuman(os.Stdout, out.Stats, tag)
	default:
		return report.Write(os.Stdout, out.Stats)
	}
}
