package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/roach88/sortbench/internal/bench"
	"github.com/roach88/sortbench/internal/input"
	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
	"github.com/roach88/sortbench/internal/session"
	"github.com/roach88/sortbench/internal/testutil"
)

// ClockStep is how far the scenario clock advances per reading. Every
// measured operation therefore reports an elapsed time of one step.
const ClockStep = time.Microsecond

// runner executes one scenario against a fresh session.
type runner struct {
	sess      *session.Session
	validator *input.Validator
	logger    *slog.Logger
}

// Run executes a scenario and returns its result.
//
// Each scenario runs in a fresh session with an in-memory journal, a step
// clock and sequential journal IDs, so identical scenarios produce identical
// traces. Expect mismatches and failed assertions are reported in the
// result; the returned error is reserved for scenarios that cannot run at
// all (invalid records, setup overflowing the capacity, journal failures).
//
// A nil logger discards logs.
func Run(ctx context.Context, s *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	validator, err := input.NewValidator()
	if err != nil {
		return nil, err
	}

	sess, err := session.New(session.Config{
		Capacity: s.Capacity,
		Clock:    testutil.NewStepClock(ClockStep),
		IDs:      testutil.NewSequentialIDGenerator(s.Name),
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	defer sess.Close()

	r := &runner{sess: sess, validator: validator, logger: logger}

	if err := r.executeSetup(ctx, s.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	result := NewResult()
	if err := r.executeFlow(ctx, s.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	result.FinalOrder = names(sess.Records())
	result.SortedByName = sess.IsSortedByName()

	actx := &AssertionContext{Ctx: ctx, Session: sess}
	for _, msg := range EvaluateAssertions(result, s.Assertions, actx) {
		result.AddError(msg)
	}

	logger.Debug("scenario finished", "name", s.Name, "pass", result.Pass, "steps", len(result.Trace))
	return result, nil
}

func (r *runner) executeSetup(ctx context.Context, recs []record.Record) error {
	for i, rec := range recs {
		clean, err := r.validator.Clean(rec)
		if err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
		if err := r.sess.Insert(ctx, clean); err != nil {
			return fmt.Errorf("setup[%d]: %w", i, err)
		}
	}
	return nil
}

func (r *runner) executeFlow(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		event, err := r.executeStep(ctx, step)
		if err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		result.AddTrace(event)

		if step.Expect != nil {
			for _, msg := range checkExpect(step.Expect, event) {
				result.AddError(fmt.Sprintf("flow[%d] %s: %s", i, step.Op, msg))
			}
		}
	}
	return nil
}

// executeStep runs one step. Collection rejections become outcomes; only
// malformed steps and infrastructure failures are returned as errors.
func (r *runner) executeStep(ctx context.Context, step Step) (TraceEvent, error) {
	switch step.Op {
	case OpInsert:
		return r.insert(ctx, step)
	case OpSort:
		return r.sort(ctx, step)
	case OpSearch:
		return r.search(ctx, step)
	case OpAssemble:
		return r.assemble(ctx, step)
	default:
		return TraceEvent{}, fmt.Errorf("unknown op %q", step.Op)
	}
}

func (r *runner) insert(ctx context.Context, step Step) (TraceEvent, error) {
	if step.Record == nil {
		return TraceEvent{}, fmt.Errorf("insert requires a record")
	}
	rec, err := r.validator.Clean(*step.Record)
	if err != nil {
		return TraceEvent{}, err
	}

	event := TraceEvent{
		Op: OpInsert,
		Args: map[string]string{
			"name":     rec.Name,
			"category": rec.Category,
			"priority": strconv.Itoa(rec.Priority),
		},
	}
	opErr := r.sess.Insert(ctx, rec)
	event.Outcome, err = outcome(opErr)
	return event, err
}

func (r *runner) sort(ctx context.Context, step Step) (TraceEvent, error) {
	field, err := record.ParseField(step.Field)
	if err != nil {
		return TraceEvent{}, err
	}
	target := bench.TargetAuthoritative
	if step.Target != "" {
		if target, err = bench.ParseTarget(step.Target); err != nil {
			return TraceEvent{}, err
		}
	}

	res, err := r.sess.Sort(ctx, field, target)
	if err != nil {
		return TraceEvent{}, err
	}
	return TraceEvent{
		Op:          OpSort,
		Args:        map[string]string{"field": field.String(), "target": target.String()},
		Outcome:     session.OutcomeSuccess,
		Comparisons: res.Measurement.Comparisons,
		ElapsedNS:   res.Measurement.Elapsed.Nanoseconds(),
		Order:       names(res.Records),
	}, nil
}

func (r *runner) search(ctx context.Context, step Step) (TraceEvent, error) {
	mode, err := search.ParseMode(step.Mode)
	if err != nil {
		return TraceEvent{}, err
	}

	event := TraceEvent{
		Op:   OpSearch,
		Args: map[string]string{"mode": mode.String(), "key": step.Key},
	}
	res, opErr := r.sess.Search(ctx, mode, step.Key)
	if opErr != nil {
		event.Outcome, err = outcome(opErr)
		return event, err
	}

	event.Outcome = session.OutcomeNotFound
	if res.Found {
		event.Outcome = session.OutcomeFound
		event.Index = &res.Index
	}
	event.Comparisons = res.Measurement.Comparisons
	event.ElapsedNS = res.Measurement.Elapsed.Nanoseconds()
	return event, nil
}

func (r *runner) assemble(ctx context.Context, step Step) (TraceEvent, error) {
	field, err := record.ParseField(step.Field)
	if err != nil {
		return TraceEvent{}, err
	}

	event := TraceEvent{
		Op:   OpAssemble,
		Args: map[string]string{"field": field.String(), "key": step.Key},
	}
	res, opErr := r.sess.Assemble(ctx, field, step.Key)
	if opErr != nil {
		event.Outcome, err = outcome(opErr)
		return event, err
	}

	event.Args["mode"] = res.Search.Mode.String()
	event.Outcome = session.OutcomeAbsent
	if res.Present() {
		event.Outcome = session.OutcomePresent
		event.Index = &res.Search.Index
	}
	event.Comparisons = res.Sort.Measurement.Comparisons + res.Search.Measurement.Comparisons
	event.ElapsedNS = (res.Sort.Measurement.Elapsed + res.Search.Measurement.Elapsed).Nanoseconds()
	event.Order = names(res.Sort.Records)
	return event, nil
}

// outcome maps an operation error to its outcome name. Errors that are not
// collection rejections are returned unchanged.
func outcome(err error) (string, error) {
	name := session.OutcomeOf(err)
	if name == "" {
		return "", err
	}
	return name, nil
}

// checkExpect compares a step's event with its expect clause.
func checkExpect(want *Expect, got TraceEvent) []string {
	var msgs []string
	if want.Case != got.Outcome {
		msgs = append(msgs, fmt.Sprintf("expected case %s, got %s", want.Case, got.Outcome))
	}
	if want.Comparisons != nil && *want.Comparisons != got.Comparisons {
		msgs = append(msgs, fmt.Sprintf("expected %d comparisons, got %d", *want.Comparisons, got.Comparisons))
	}
	if want.Index != nil {
		switch {
		case got.Index == nil:
			msgs = append(msgs, fmt.Sprintf("expected index %d, got no match", *want.Index))
		case *want.Index != *got.Index:
			msgs = append(msgs, fmt.Sprintf("expected index %d, got %d", *want.Index, *got.Index))
		}
	}
	if want.Order != nil && !slices.Equal(want.Order, got.Order) {
		msgs = append(msgs, fmt.Sprintf("expected order %v, got %v", want.Order, got.Order))
	}
	return msgs
}

func names(recs []record.Record) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.Name
	}
	return out
}
