// Package render prints fixed-width console tables and measurement lines.
//
// Column widths match the input bounds (29-rune names, 19-rune categories),
// so a valid record never breaks alignment.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/roach88/sortbench/internal/backpack"
	"github.com/roach88/sortbench/internal/bench"
	"github.com/roach88/sortbench/internal/journal"
	"github.com/roach88/sortbench/internal/record"
)

var recordRule = strings.Repeat("-", 4) + "+" + strings.Repeat("-", 31) + "+" + strings.Repeat("-", 21) + "+" + strings.Repeat("-", 9)

// Records prints recs as a numbered table. Row numbers are 0-based so they
// match search result indexes.
func Records(w io.Writer, recs []record.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "(no records)")
		return
	}
	fmt.Fprintf(w, "Records (%d):\n", len(recs))
	fmt.Fprintf(w, "%3s | %-29s | %-19s | %8s\n", "#", "Name", "Category", "Priority")
	fmt.Fprintln(w, recordRule)
	for i, r := range recs {
		fmt.Fprintf(w, "%3d | %-29s | %-19s | %8d\n", i, r.Name, r.Category, r.Priority)
	}
}

// Seconds formats d the way the measurement lines do: seconds with
// microsecond precision.
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f s", d.Seconds())
}

// SortLine prints the measurement of one sort.
func SortLine(w io.Writer, res bench.SortResult) {
	fmt.Fprintf(w, "%s sort by %s (%s): comparisons=%d, time=%s\n",
		res.Algorithm, res.Field, res.Target, res.Measurement.Comparisons, Seconds(res.Measurement.Elapsed))
}

// SearchLine prints the outcome and measurement of one search.
func SearchLine(w io.Writer, res bench.SearchResult) {
	if res.Found {
		fmt.Fprintf(w, "%s search for %q: found at index %d", res.Mode, res.Key, res.Index)
	} else {
		fmt.Fprintf(w, "%s search for %q: not found", res.Mode, res.Key)
	}
	fmt.Fprintf(w, ", comparisons=%d, time=%s\n", res.Measurement.Comparisons, Seconds(res.Measurement.Elapsed))
}

// Assembly prints the outcome of a final assembly.
func Assembly(w io.Writer, res bench.AssemblyResult) {
	SortLine(w, res.Sort)
	SearchLine(w, res.Search)
	if res.Present() {
		fmt.Fprintf(w, "Key component PRESENT at index %d. The tower can be activated.\n", res.Search.Index)
		return
	}
	fmt.Fprintln(w, "Key component ABSENT. Assembly failed.")
}

// History prints journal entries followed by per-operation totals.
func History(w io.Writer, entries []journal.Entry, totals []journal.OpTotal) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no measurements yet)")
		return
	}
	fmt.Fprintf(w, "%4s | %-8s | %-24s | %-18s | %11s | %s\n", "Seq", "Op", "Detail", "Outcome", "Comparisons", "Time")
	for _, e := range entries {
		fmt.Fprintf(w, "%4d | %-8s | %-24s | %-18s | %11d | %s\n",
			e.Seq, e.Op, detail(e), e.Outcome, e.Comparisons, Seconds(e.Elapsed))
	}
	fmt.Fprintln(w)
	for _, t := range totals {
		fmt.Fprintf(w, "%-8s x%d: comparisons=%d, time=%s\n", t.Op, t.Count, t.Comparisons, Seconds(t.Elapsed))
	}
}

func detail(e journal.Entry) string {
	switch e.Op {
	case journal.OpSort:
		return e.Field + " (" + e.Target + ")"
	case journal.OpSearch:
		return e.Mode + " " + e.Key
	case journal.OpAssemble:
		if e.Mode == "" {
			return e.Field + " " + e.Key
		}
		return e.Field + "/" + e.Mode + " " + e.Key
	default:
		return e.Key
	}
}

var itemRule = "+" + strings.Repeat("-", 4) + "+" + strings.Repeat("-", 30) + "+" + strings.Repeat("-", 22) + "+" + strings.Repeat("-", 12) + "+"

// Items prints the backpack contents. Row numbers are 1-based.
func Items(w io.Writer, items []backpack.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(backpack is empty)")
		return
	}
	fmt.Fprintln(w, itemRule)
	fmt.Fprintf(w, "| %-2s | %-28s | %-20s | %10s |\n", "#", "Name", "Kind", "Quantity")
	fmt.Fprintln(w, itemRule)
	for i, it := range items {
		fmt.Fprintf(w, "| %2d | %-28s | %-20s | %10d |\n", i+1, it.Name, it.Kind, it.Quantity)
	}
	fmt.Fprintln(w, itemRule)
}
