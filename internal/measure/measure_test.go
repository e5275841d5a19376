package measure

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
	"github.com/roach88/sortbench/internal/sorter"
)

// scriptedClock returns the given instants in order.
type scriptedClock struct {
	times []time.Time
	calls int
}

func (c *scriptedClock) Now() time.Time {
	t := c.times[c.calls]
	c.calls++
	return t
}

// countingAlgorithm reports a fixed comparison count.
type countingAlgorithm struct {
	count int64
	calls int
}

func (a *countingAlgorithm) Name() string      { return "fake" }
func (a *countingAlgorithm) Key() record.Field { return record.FieldName }
func (a *countingAlgorithm) Sort([]record.Record) int64 {
	a.calls++
	return a.count
}

func TestHarnessSortPassesCountThrough(t *testing.T) {
	base := time.Unix(1000, 0)
	clock := &scriptedClock{times: []time.Time{base, base.Add(250 * time.Microsecond)}}
	alg := &countingAlgorithm{count: 17}

	m := NewHarness(clock).Sort(alg, nil)

	assert.Equal(t, 1, alg.calls)
	assert.Equal(t, 2, clock.calls)
	assert.Equal(t, int64(17), m.Comparisons)
	assert.Equal(t, 250*time.Microsecond, m.Elapsed)
}

func TestHarnessSortMatchesUnwrappedAlgorithm(t *testing.T) {
	in := []record.Record{{Name: "Core"}, {Name: "Ammo"}, {Name: "Blade"}}

	direct := record.Clone(in)
	want := sorter.Bubble{}.Sort(direct)

	wrapped := record.Clone(in)
	m := NewHarness(nil).Sort(sorter.Bubble{}, wrapped)

	assert.Equal(t, want, m.Comparisons)
	assert.Equal(t, direct, wrapped)
	assert.GreaterOrEqual(t, m.Elapsed, time.Duration(0))
}

func TestHarnessSearch(t *testing.T) {
	base := time.Unix(0, 0)
	clock := &scriptedClock{times: []time.Time{base, base}}
	recs := []record.Record{{Name: "Ammo"}, {Name: "Blade"}, {Name: "Core"}}

	idx, found, m := NewHarness(clock).Search(search.Linear{}, recs, "Core")

	require.True(t, found)
	assert.Equal(t, 2, idx)
	assert.Equal(t, int64(3), m.Comparisons)
	assert.Equal(t, time.Duration(0), m.Elapsed, "zero duration is a valid measurement")
}

func TestElapsedNeverNegative(t *testing.T) {
	base := time.Unix(50, 0)
	clock := &scriptedClock{times: []time.Time{base, base.Add(-time.Second)}}

	m := NewHarness(clock).Sort(&countingAlgorithm{}, nil)
	assert.Equal(t, time.Duration(0), m.Elapsed)
}

func TestSystemClockIsMonotonic(t *testing.T) {
	c := SystemClock{}
	a := c.Now()
	b := c.Now()
	assert.False(t, b.Before(a))
}
