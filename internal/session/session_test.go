package session

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/sortbench/internal/bench"
	"github.com/roach88/sortbench/internal/journal"
	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
	"github.com/roach88/sortbench/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newSession(t *testing.T, capacity int) *Session {
	t.Helper()
	s, err := New(Config{
		Capacity: capacity,
		Clock:    testutil.NewStepClock(time.Microsecond),
		IDs:      testutil.NewSequentialIDGenerator("run"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestInsertSortSearchJournaled(t *testing.T) {
	s := newSession(t, 0)
	ctx := context.Background()
	assert.Equal(t, bench.DefaultCapacity, s.Cap())

	for _, r := range []record.Record{
		{Name: "Core", Category: "Part", Priority: 5},
		{Name: "Ammo", Category: "Supply", Priority: 2},
		{Name: "Blade", Category: "Part", Priority: 9},
	} {
		require.NoError(t, s.Insert(ctx, r))
	}

	res, err := s.Sort(ctx, record.FieldName, bench.TargetAuthoritative)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Measurement.Comparisons)
	assert.True(t, s.IsSortedByName())

	found, err := s.Search(ctx, search.ModeBinary, "Blade")
	require.NoError(t, err)
	assert.Equal(t, 1, found.Index)

	history, err := s.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 5)

	sortEntry := history[3]
	assert.Equal(t, journal.Entry{
		ID:          "run-0004",
		Seq:         4,
		Op:          journal.OpSort,
		Field:       "name",
		Target:      "authoritative",
		Outcome:     OutcomeSuccess,
		Comparisons: 3,
		Elapsed:     time.Microsecond,
		Length:      3,
	}, sortEntry)

	searchEntry := history[4]
	assert.Equal(t, OutcomeFound, searchEntry.Outcome)
	assert.Equal(t, "binary", searchEntry.Mode)
	assert.Equal(t, "Blade", searchEntry.Key)
	assert.Equal(t, int64(1), searchEntry.Comparisons)
}

func TestRejectedOperationsAreJournaled(t *testing.T) {
	s := newSession(t, 2)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record.Record{Name: "b", Category: "x", Priority: 1}))
	require.NoError(t, s.Insert(ctx, record.Record{Name: "a", Category: "x", Priority: 1}))

	err := s.Insert(ctx, record.Record{Name: "c", Category: "x", Priority: 1})
	assert.True(t, bench.IsCapacityError(err))
	assert.Equal(t, 2, s.Len())

	_, err = s.Search(ctx, search.ModeBinary, "a")
	assert.True(t, bench.IsPreconditionError(err))

	res, err := s.Search(ctx, search.ModeLinear, "zzz")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, int64(2), res.Measurement.Comparisons)

	history, err := s.History(ctx)
	require.NoError(t, err)
	outcomes := make([]string, len(history))
	for i, e := range history {
		outcomes[i] = e.Outcome
	}
	assert.Equal(t, []string{
		OutcomeSuccess,
		OutcomeSuccess,
		OutcomeCapacityExceeded,
		OutcomePreconditionFailed,
		OutcomeNotFound,
	}, outcomes)
	assert.Equal(t, int64(0), history[3].Comparisons, "rejected search has no comparison count")
}

func TestAssemble(t *testing.T) {
	s := newSession(t, 0)
	ctx := context.Background()

	_, err := s.Assemble(ctx, record.FieldName, "Core")
	assert.True(t, bench.IsEmptyError(err))

	require.NoError(t, s.Insert(ctx, record.Record{Name: "Core", Category: "Part", Priority: 5}))
	require.NoError(t, s.Insert(ctx, record.Record{Name: "Ammo", Category: "Supply", Priority: 2}))

	res, err := s.Assemble(ctx, record.FieldCategory, "Ammo")
	require.NoError(t, err)
	assert.True(t, res.Present())
	assert.Equal(t, search.ModeLinear, res.Search.Mode)

	entries, err := s.History(ctx)
	require.NoError(t, err)
	last := entries[len(entries)-1]
	assert.Equal(t, journal.OpAssemble, last.Op)
	assert.Equal(t, OutcomePresent, last.Outcome)
	assert.Equal(t, "linear", last.Mode)
	assert.Equal(t, res.Sort.Measurement.Comparisons+res.Search.Measurement.Comparisons, last.Comparisons)

	n, err := s.Count(ctx, journal.OpAssemble)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPreviewDoesNotChangeState(t *testing.T) {
	s := newSession(t, 0)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record.Record{Name: "b", Category: "x", Priority: 1}))
	require.NoError(t, s.Insert(ctx, record.Record{Name: "a", Category: "x", Priority: 1}))

	res, err := s.Sort(ctx, record.FieldName, bench.TargetCopy)
	require.NoError(t, err)
	assert.Equal(t, "a", res.Records[0].Name)
	assert.Equal(t, "b", s.Records()[0].Name)
	assert.Equal(t, bench.StateUnsorted, s.State())
}

func TestTotals(t *testing.T) {
	s := newSession(t, 0)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record.Record{Name: "b", Category: "x", Priority: 1}))
	_, err := s.Sort(ctx, record.FieldPriority, bench.TargetAuthoritative)
	require.NoError(t, err)

	totals, err := s.Totals(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, journal.OpInsert, totals[0].Op)
	assert.Equal(t, journal.OpSort, totals[1].Op)
}

func TestLogsOperations(t *testing.T) {
	buf := &bytes.Buffer{}
	s, err := New(Config{
		Clock:  testutil.NewStepClock(time.Microsecond),
		IDs:    testutil.NewSequentialIDGenerator("log"),
		Logger: slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, record.Record{Name: "Core", Category: "Part", Priority: 5}))
	_, err = s.Sort(ctx, record.FieldName, bench.TargetAuthoritative)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=\"record inserted\"")
	assert.Contains(t, out, "msg=sorted")
	assert.Contains(t, out, "algorithm=bubble")
	assert.Contains(t, out, "id=log-0001")
}

func TestInvalidCapacity(t *testing.T) {
	_, err := New(Config{Capacity: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")
}

func TestOutcomeOf(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, OutcomeOf(nil))
	assert.Equal(t, OutcomeCapacityExceeded, OutcomeOf(bench.NewCapacityError(1)))
	assert.Equal(t, OutcomePreconditionFailed, OutcomeOf(fmt.Errorf("wrap: %w", bench.NewPreconditionError(bench.StateEmpty))))
	assert.Equal(t, OutcomeEmptyCollection, OutcomeOf(bench.NewEmptyError("assembly")))
	assert.Equal(t, "", OutcomeOf(fmt.Errorf("other")))
}
