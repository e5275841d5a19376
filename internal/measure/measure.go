// Package measure times sort and search invocations.
//
// The harness stamps a start time immediately before the algorithm runs and
// an end time immediately after. It never counts comparisons itself; the
// wrapped algorithm reports its own count, which the harness passes through
// untouched.
//
// Time comes from a Clock so tests can substitute a deterministic one.
// SystemClock relies on the monotonic reading carried by time.Now, so
// elapsed values are unaffected by wall-clock adjustments.
package measure

import (
	"time"

	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
	"github.com/roach88/sortbench/internal/sorter"
)

// Clock supplies timestamps for measurements.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the process clock.
type SystemClock struct{}

// Now returns time.Now, which includes a monotonic reading.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Measurement is the cost of one algorithm invocation.
type Measurement struct {
	Comparisons int64         `json:"comparisons"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

// Harness wraps algorithm calls with timing.
type Harness struct {
	clock Clock
}

// NewHarness creates a harness. A nil clock means SystemClock.
func NewHarness(clock Clock) *Harness {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Harness{clock: clock}
}

// Sort runs alg over recs in place and measures it.
func (h *Harness) Sort(alg sorter.Algorithm, recs []record.Record) Measurement {
	start := h.clock.Now()
	comparisons := alg.Sort(recs)
	end := h.clock.Now()
	return Measurement{Comparisons: comparisons, Elapsed: elapsed(start, end)}
}

// Search runs strategy over recs and measures it.
func (h *Harness) Search(strategy search.Strategy, recs []record.Record, key string) (int, bool, Measurement) {
	start := h.clock.Now()
	idx, found, comparisons := strategy.Find(recs, key)
	end := h.clock.Now()
	return idx, found, Measurement{Comparisons: comparisons, Elapsed: elapsed(start, end)}
}

// elapsed is never negative. Zero is a valid result for tiny inputs.
func elapsed(start, end time.Time) time.Duration {
	d := end.Sub(start)
	if d < 0 {
		return 0
	}
	return d
}
