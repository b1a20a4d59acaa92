// Package verify provides validation functions for heap arena images.
// These helpers are used in tests and by heapctl inspect to check that the
// block chain keeps its invariants.
package verify

import (
	"errors"
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// ValidationError describes the first invariant an image violates.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]interface{}
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AllInvariants validates the chain and checks that it accounts for exactly
// maxHeap bytes. Returns the first error encountered, or nil if all checks pass.
//
// Adjacent free blocks are not rejected here because a shrinking resize
// may leave them until the next release; use NoAdjacentFree for that.
func AllInvariants(data []byte, maxHeap uint64) error {
	if err := Chain(data); err != nil {
		return err
	}
	if err := Conservation(data, maxHeap); err != nil {
		return err
	}
	return nil
}

// Strict is AllInvariants plus NoAdjacentFree.
func Strict(data []byte, maxHeap uint64) error {
	if err := AllInvariants(data, maxHeap); err != nil {
		return err
	}
	return NoAdjacentFree(data)
}

// Chain validates every header, the address order, and the prev/next links.
func Chain(data []byte) error {
	_, err := Walk(data)
	return err
}

// Walk decodes the chain starting at offset 0 and returns its blocks in
// address order.
func Walk(data []byte) ([]format.Block, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if uint64(len(data)) >= format.MaxArena {
		return nil, &ValidationError{
			Type:    "Chain",
			Message: fmt.Sprintf("image too large: %d bytes", len(data)),
			Offset:  -1,
		}
	}

	var blocks []format.Block
	prev := uint32(format.NilOff)
	off := uint32(0)
	for {
		blk, err := format.ReadBlock(data, off)
		if err != nil {
			return blocks, &ValidationError{
				Type:    "Chain",
				Message: headerMessage(err),
				Offset:  int(off),
			}
		}
		if blk.Prev != prev {
			return blocks, &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("prev link mismatch: field=0x%X, expected=0x%X", blk.Prev, prev),
				Offset:  int(off),
				Details: map[string]interface{}{"field": blk.Prev, "expected": prev},
			}
		}

		end := blk.End()
		if end > uint64(len(data)) {
			return blocks, &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("block overruns image: end=0x%X, size=0x%X", end, len(data)),
				Offset:  int(off),
			}
		}
		blocks = append(blocks, blk)

		if end == uint64(len(data)) {
			if blk.Next != format.NilOff {
				return blocks, &ValidationError{
					Type:    "Chain",
					Message: fmt.Sprintf("tail block links to 0x%X", blk.Next),
					Offset:  int(off),
				}
			}
			return blocks, nil
		}
		if uint64(blk.Next) != end {
			return blocks, &ValidationError{
				Type:    "Chain",
				Message: fmt.Sprintf("next link mismatch: field=0x%X, expected=0x%X", blk.Next, end),
				Offset:  int(off),
				Details: map[string]interface{}{"field": blk.Next, "expected": end},
			}
		}
		prev, off = off, blk.Next
	}
}

// NoAdjacentFree validates that no two neighboring blocks are both free.
func NoAdjacentFree(data []byte) error {
	blocks, err := Walk(data)
	if err != nil {
		return err
	}
	for i := 1; i < len(blocks); i++ {
		if blocks[i-1].Free && blocks[i].Free {
			return &ValidationError{
				Type:    "NoAdjacentFree",
				Message: fmt.Sprintf("free block follows free block at 0x%X", blocks[i-1].Offset),
				Offset:  int(blocks[i].Offset),
			}
		}
	}
	return nil
}

// Conservation validates that the chain accounts for exactly maxHeap bytes,
// headers included.
func Conservation(data []byte, maxHeap uint64) error {
	blocks, err := Walk(data)
	if err != nil {
		return err
	}
	var total uint64
	for _, b := range blocks {
		total += format.HeaderSize + uint64(b.Size)
	}
	if total != maxHeap {
		return &ValidationError{
			Type:    "Conservation",
			Message: fmt.Sprintf("chain covers %d bytes, heap obtained %d", total, maxHeap),
			Offset:  -1,
			Details: map[string]interface{}{"chain": total, "max_heap": maxHeap},
		}
	}
	return nil
}

// BlockCount validates that the chain holds exactly want blocks.
func BlockCount(data []byte, want int) error {
	blocks, err := Walk(data)
	if err != nil {
		return err
	}
	if len(blocks) != want {
		return &ValidationError{
			Type:    "BlockCount",
			Message: fmt.Sprintf("chain has %d blocks, expected %d", len(blocks), want),
			Offset:  -1,
		}
	}
	return nil
}

func headerMessage(err error) string {
	switch {
	case errors.Is(err, format.ErrTruncated):
		return "header truncated"
	case errors.Is(err, format.ErrBadMagic):
		return "bad magic"
	case errors.Is(err, format.ErrMisaligned):
		return "payload size not 4-byte aligned"
	}
	return err.Error()
}
