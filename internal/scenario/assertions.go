package scenario

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/sortbench/internal/session"
)

// AssertionError is returned when an assertion fails.
// It includes the trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Seq, event.Op, event.Args, event.Outcome)
		}
	}

	return buf.String()
}

// AssertionContext carries what assertions need beyond the trace.
type AssertionContext struct {
	Ctx     context.Context
	Session *session.Session
}

// EvaluateAssertions runs every assertion and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var msgs []string
	for i, a := range assertions {
		if err := evaluate(result, a, actx); err != nil {
			msgs = append(msgs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return msgs
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertSortedByName:
		return assertSortedByName(result, a)
	case AssertState:
		return assertState(actx, a)
	case AssertFinalOrder:
		return assertFinalOrder(result, a)
	case AssertTraceCount:
		return assertTraceCount(result.Trace, a)
	case AssertTraceOrder:
		return assertTraceOrder(result.Trace, a)
	case AssertJournalCount:
		return assertJournalCount(actx, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertSortedByName(result *Result, a Assertion) error {
	if a.Value == nil {
		return fmt.Errorf("sorted_by_name assertion requires value")
	}
	if result.SortedByName != *a.Value {
		return &AssertionError{
			Type:     AssertSortedByName,
			Expected: fmt.Sprintf("sorted_by_name=%t", *a.Value),
			Actual:   fmt.Sprintf("sorted_by_name=%t", result.SortedByName),
			Trace:    result.Trace,
		}
	}
	return nil
}

func assertState(actx *AssertionContext, a Assertion) error {
	if actx == nil || actx.Session == nil {
		return fmt.Errorf("state assertion requires a session")
	}
	got := actx.Session.State().String()
	if got != a.State {
		return &AssertionError{
			Type:     AssertState,
			Expected: a.State,
			Actual:   got,
		}
	}
	return nil
}

func assertFinalOrder(result *Result, a Assertion) error {
	if !slices.Equal(result.FinalOrder, a.Names) {
		return &AssertionError{
			Type:     AssertFinalOrder,
			Expected: fmt.Sprintf("%v", a.Names),
			Actual:   fmt.Sprintf("%v", result.FinalOrder),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTraceCount checks that op appears exactly Count times, restricted to
// events with the given outcome when one is set.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Op != a.Op {
			continue
		}
		if a.Outcome != "" && event.Outcome != a.Outcome {
			continue
		}
		count++
	}

	if count != a.Count {
		what := a.Op
		if a.Outcome != "" {
			what += " with outcome " + a.Outcome
		}
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, what),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertTraceOrder checks that ops first appear in the listed order.
// Ops don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if positions[event.Op] == 0 {
			positions[event.Op] = i + 1 // 1-indexed for readability
		}
	}

	for _, op := range a.Ops {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all ops present: %v", a.Ops),
				Actual:   fmt.Sprintf("missing op: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Ops); i++ {
		prev, curr := a.Ops[i-1], a.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("ops in order: %v", a.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertJournalCount checks the session journal, which also holds setup
// inserts.
func assertJournalCount(actx *AssertionContext, a Assertion) error {
	if actx == nil || actx.Session == nil {
		return fmt.Errorf("journal_count assertion requires a session")
	}
	count, err := actx.Session.Count(actx.Ctx, a.Op)
	if err != nil {
		return fmt.Errorf("count journal entries: %w", err)
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("%d journal entries for %s", a.Count, a.Op),
			Actual:   fmt.Sprintf("%d entries", count),
		}
	}
	return nil
}
