package main

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap/alloc"
	"github.com/joshuapare/heapkit/heap/dirty"
	"github.com/joshuapare/heapkit/internal/vmem"
)

// heap bundles an allocator with the space it grows into.
type heap struct {
	*alloc.Allocator
	space   vmem.Space
	tracker *dirty.Tracker // nil unless the space is file-backed
}

// newHeap builds an allocator over an anonymous reservation, or over a
// file-backed mapping when image is set.
func newHeap(strategy alloc.Strategy, limit int, image string) (*heap, error) {
	h := &heap{}
	cfg := &alloc.Config{Strategy: strategy}

	if image != "" {
		m, err := vmem.CreateFile(image, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to create image: %w", err)
		}
		h.space = m
		h.tracker = dirty.NewTracker(m)
		cfg.Tracker = h.tracker
	} else {
		sp, err := vmem.Reserve(limit)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve heap: %w", err)
		}
		h.space = sp
	}

	a, err := alloc.New(h.space, cfg)
	if err != nil {
		h.space.Close()
		return nil, err
	}
	h.Allocator = a
	return h, nil
}

func (h *heap) Close() error {
	return h.space.Close()
}
