// Package report renders allocator statistics.
//
// Write produces the classic exit-time block, byte for byte:
//
//	heap management statistics
//	mallocs:	<n>
//	frees:		<n>
//	...
//
// WriteHuman prints the same counters with locale-aware digit grouping, and
// JSON emits them for scripts.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap/alloc"
)

const statsFormat = "\nheap management statistics\n" +
	"mallocs:\t%d\n" +
	"frees:\t\t%d\n" +
	"reuses:\t\t%d\n" +
	"grows:\t\t%d\n" +
	"splits:\t\t%d\n" +
	"coalesces:\t%d\n" +
	"blocks:\t\t%d\n" +
	"requested:\t%d\n" +
	"max heap:\t%d\n"

// Write prints s in the exit-time report format.
func Write(w io.Writer, s alloc.Stats) error {
	_, err := fmt.Fprintf(w, statsFormat,
		s.Mallocs,
		s.Frees,
		s.Reuses,
		s.Grows,
		s.Splits,
		s.Coalesces,
		s.Blocks,
		s.Requested,
		s.MaxHeap,
	)
	return err
}

// String returns the exit-time report for s.
func String(s alloc.Stats) string {
	var b strings.Builder
	_ = Write(&b, s)
	return b.String()
}

// WriteHuman prints s as an aligned table with numbers grouped for tag.
func WriteHuman(w io.Writer, s alloc.Stats, tag language.Tag) error {
	p := message.NewPrinter(tag)
	rows := []struct {
		label string
		value any
	}{
		{"Mallocs", s.Mallocs},
		{"Frees", s.Frees},
		{"Live", s.Live()},
		{"Reuses", s.Reuses},
		{"Grows", s.Grows},
		{"Splits", s.Splits},
		{"Coalesces", s.Coalesces},
		{"Blocks", s.Blocks},
		{"Requested bytes", s.Requested},
		{"Max heap bytes", s.MaxHeap},
	}
	if _, err := p.Fprintf(w, "Heap statistics\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := p.Fprintf(w, "  %-16s %d\n", r.label+":", r.value); err != nil {
			return err
		}
	}
	if s.MaxHeap > 0 {
		overhead := float64(s.MaxHeap-min(s.Requested, s.MaxHeap)) / float64(s.MaxHeap) * 100
		if _, err := p.Fprintf(w, "  %-16s %.1f%%\n", "Overhead:", overhead); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes s as an indented JSON object.
func JSON(w io.Writer, s alloc.Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
