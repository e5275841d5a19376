package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() []TraceEvent {
	return []TraceEvent{
		{Seq: 1, Op: OpInsert, Outcome: "Success"},
		{Seq: 2, Op: OpSearch, Outcome: "PreconditionFailed"},
		{Seq: 3, Op: OpSort, Outcome: "Success"},
		{Seq: 4, Op: OpSearch, Outcome: "Found"},
	}
}

func TestAssertTraceCount(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpSearch, Count: 2}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpSearch, Outcome: "Found", Count: 1}))
	assert.NoError(t, assertTraceCount(trace, Assertion{Op: OpAssemble, Count: 0}))

	err := assertTraceCount(trace, Assertion{Op: OpSort, Count: 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 occurrences of sort")
	assert.Contains(t, err.Error(), "Actual: 1 occurrences")
}

func TestAssertTraceOrder(t *testing.T) {
	trace := sampleTrace()

	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpInsert, OpSearch, OpSort}}))
	assert.NoError(t, assertTraceOrder(trace, Assertion{Ops: []string{OpInsert, OpSort}}))

	err := assertTraceOrder(trace, Assertion{Ops: []string{OpSort, OpSearch}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort (pos 3) should be before search (pos 2)")

	err = assertTraceOrder(trace, Assertion{Ops: []string{OpAssemble}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing op: assemble")
}

func TestAssertFinalOrder(t *testing.T) {
	result := NewResult()
	result.FinalOrder = []string{"Ammo", "Core"}

	assert.NoError(t, assertFinalOrder(result, Assertion{Names: []string{"Ammo", "Core"}}))

	err := assertFinalOrder(result, Assertion{Names: []string{"Core", "Ammo"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: [Core Ammo]")
}

func TestAssertSortedByName(t *testing.T) {
	result := NewResult()
	yes, no := true, false

	assert.Error(t, assertSortedByName(result, Assertion{Value: &yes}))
	assert.NoError(t, assertSortedByName(result, Assertion{Value: &no}))
	assert.Error(t, assertSortedByName(result, Assertion{}))
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "1",
		Actual:   "0",
		Trace: []TraceEvent{
			{Seq: 1, Op: OpSort, Args: map[string]string{"field": "name"}, Outcome: "Success"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: trace_count")
	assert.Contains(t, msg, "[1] sort map[field:name] -> Success")
}

func TestEvaluateAssertions_RequiresSession(t *testing.T) {
	msgs := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertJournalCount, Op: OpSort},
		{Type: AssertState, State: "empty"},
	}, nil)

	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "requires a session")
	assert.Contains(t, msgs[1], "requires a session")
}
