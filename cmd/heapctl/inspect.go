package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/verify"
	"github.com/joshuapare/heapkit/internal/vmem"
)

var inspectBlocks bool

func init() {
	cmd := newInspectCmd()
	cmd.Flags().BoolVar(&inspectBlocks, "blocks", false, "List every block")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Validate a heap image and summarize its blocks",
		Long: `The inspect command maps a heap image written by "heapctl bench --image",
validates the block chain, and reports block counts and fragmentation.

Example:
  heapctl inspect heap.img
  heapctl inspect heap.img --blocks
  heapctl inspect heap.img --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

type inspectBlock struct {
	Offset uint32 `json:"offset"`
	Size   uint32 `json:"size"`
	Free   bool   `json:"free"`
}

type inspectOutput struct {
	File    string         `json:"file"`
	Summary verify.Summary `json:"summary"`
	Valid   bool           `json:"valid"`
	Error   string         `json:"error,omitempty"`
	Blocks  []inspectBlock `json:"blocks,omitempty"`
}

func runInspect(args []string) error {
	path := args[0]
	printVerbose("Mapping image: %s\n", path)

	data, unmap, err := vmem.Map(path)
	if err != nil {
		return fmt.Errorf("failed to map image: %w", err)
	}
	defer unmap()

	out := inspectOutput{File: path, Valid: true}
	blocks, walkErr := verify.Walk(data)
	if walkErr == nil {
		walkErr = verify.NoAdjacentFree(data)
	}
	if walkErr != nil {
		out.Valid = false
		out.Error = walkErr.Error()
	}
	if s, err := verify.Summarize(data); err == nil {
		out.Summary = s
	}
	if inspectBlocks {
		for _, b := range blocks {
			out.Blocks = append(out.Blocks, inspectBlock{Offset: b.Offset, Size: b.Size, Free: b.Free})
		}
	}

	if jsonOut {
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		printInspect(out)
	}

	// Adjacent free blocks are a warning, not corruption.
	var verr *verify.ValidationError
	if walkErr != nil && !(errors.As(walkErr, &verr) && verr.Type == "NoAdjacentFree") {
		return fmt.Errorf("invalid heap image: %w", walkErr)
	}
	return nil
}

func printInspect(out inspectOutput) {
	s := out.Summary
	printInfo("\nHeap Image:\n")
	printInfo("  File: %s\n", out.File)
	printInfo("  Heap bytes: %d\n", s.HeapBytes)
	printInfo("  Blocks: %d (%d used, %d free)\n", s.Blocks, s.Used, s.Free)
	printInfo("  Used bytes: %d\n", s.UsedBytes)
	printInfo("  Free bytes: %d (largest %d)\n", s.FreeBytes, s.LargestFree)
	printInfo("  Fragmentation: %.2f%%\n", s.Fragmentation()*100)

	if len(out.Blocks) > 0 {
		printInfo("\nBlocks:\n")
		for _, b := range out.Blocks {
			state := "used"
			if b.Free {
				state = "free"
			}
			printInfo("  0x%08X %10d %s\n", b.Offset, b.Size, state)
		}
	}

	printInfo("\nValidation:\n")
	if out.Valid {
		printInfo("  ✓ Chain valid\n")
		return
	}
	printInfo("  ✗ %s\n", out.Error)
}
