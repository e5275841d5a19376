// Package session runs workbench operations against one collection and
// journals each of them.
//
// A Session is what the console menu and the scenario runner drive. It owns
// the bench.Collection, an in-memory journal and a logger; the collection
// itself stays free of I/O.
//
// Rejected operations (a full collection, binary search before a name sort,
// assembly of an empty collection) are journaled with their outcome and zero
// comparisons, since the algorithm never ran.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/sortbench/internal/bench"
	"github.com/roach88/sortbench/internal/journal"
	"github.com/roach88/sortbench/internal/measure"
	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
)

// Outcome names recorded in the journal and matched by scenarios.
const (
	OutcomeSuccess            = "Success"
	OutcomeFound              = "Found"
	OutcomeNotFound           = "NotFound"
	OutcomePresent            = "Present"
	OutcomeAbsent             = "Absent"
	OutcomeCapacityExceeded   = "CapacityExceeded"
	OutcomePreconditionFailed = "PreconditionFailed"
	OutcomeEmptyCollection    = "EmptyCollection"
)

// OutcomeOf maps a collection error to its outcome name.
// A nil error maps to OutcomeSuccess; unknown errors map to "".
func OutcomeOf(err error) string {
	var be *bench.Error
	switch {
	case err == nil:
		return OutcomeSuccess
	case !errors.As(err, &be):
		return ""
	case be.Code == bench.ErrCodeCapacityExceeded:
		return OutcomeCapacityExceeded
	case be.Code == bench.ErrCodePreconditionFailed:
		return OutcomePreconditionFailed
	case be.Code == bench.ErrCodeEmpty:
		return OutcomeEmptyCollection
	default:
		return ""
	}
}

// Config configures a Session. Zero values select production defaults.
type Config struct {
	// Capacity is the collection size. Zero means bench.DefaultCapacity.
	Capacity int

	// Clock times measurements. Nil means measure.SystemClock.
	Clock measure.Clock

	// IDs generates journal entry IDs. Nil means UUIDv7.
	IDs journal.IDGenerator

	// JournalPath is the SQLite path. Empty means ":memory:".
	JournalPath string

	// Logger receives operation logs. Nil discards them.
	Logger *slog.Logger
}

// Session is one workbench run.
type Session struct {
	coll    *bench.Collection
	journal *journal.Journal
	logger  *slog.Logger
}

// New creates a session with an empty collection.
func New(cfg Config) (*Session, error) {
	if cfg.Capacity == 0 {
		cfg.Capacity = bench.DefaultCapacity
	}
	if cfg.JournalPath == "" {
		cfg.JournalPath = ":memory:"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	coll, err := bench.New(cfg.Capacity, bench.WithClock(cfg.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	j, err := journal.Open(cfg.JournalPath, cfg.IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	return &Session{coll: coll, journal: j, logger: cfg.Logger}, nil
}

// Close releases the journal.
func (s *Session) Close() error {
	return s.journal.Close()
}

// Records returns a copy of the authoritative sequence.
func (s *Session) Records() []record.Record { return s.coll.Records() }

// IsSortedByName reports the collection's name-sort flag.
func (s *Session) IsSortedByName() bool { return s.coll.IsSortedByName() }

// State returns the collection's workflow state.
func (s *Session) State() bench.State { return s.coll.State() }

// Len returns the number of records.
func (s *Session) Len() int { return s.coll.Len() }

// Cap returns the collection capacity.
func (s *Session) Cap() int { return s.coll.Cap() }

// Insert appends rec to the collection.
func (s *Session) Insert(ctx context.Context, rec record.Record) error {
	opErr := s.coll.Insert(rec)
	if err := s.record(ctx, journal.Entry{
		Op:      journal.OpInsert,
		Key:     rec.Name,
		Outcome: OutcomeOf(opErr),
	}); err != nil {
		return err
	}

	if opErr != nil {
		s.logger.Warn("insert rejected", "name", rec.Name, "error", opErr)
		return opErr
	}
	s.logger.Debug("record inserted", "name", rec.Name, "len", s.coll.Len())
	return nil
}

// Sort sorts a copy or the authoritative sequence on field.
func (s *Session) Sort(ctx context.Context, field record.Field, target bench.Target) (bench.SortResult, error) {
	res, err := s.coll.ApplySort(field, target)
	if err != nil {
		return bench.SortResult{}, err
	}
	if err := s.record(ctx, journal.Entry{
		Op:          journal.OpSort,
		Field:       field.String(),
		Target:      target.String(),
		Outcome:     OutcomeSuccess,
		Comparisons: res.Measurement.Comparisons,
		Elapsed:     res.Measurement.Elapsed,
	}); err != nil {
		return bench.SortResult{}, err
	}

	s.logger.Info("sorted",
		"field", field.String(),
		"algorithm", res.Algorithm,
		"target", target.String(),
		"comparisons", res.Measurement.Comparisons,
		"elapsed", res.Measurement.Elapsed,
	)
	return res, nil
}

// Search looks key up by name.
func (s *Session) Search(ctx context.Context, mode search.Mode, key string) (bench.SearchResult, error) {
	res, opErr := s.coll.Search(mode, key)
	if opErr != nil && OutcomeOf(opErr) == "" {
		return bench.SearchResult{}, opErr
	}

	outcome := OutcomeOf(opErr)
	if opErr == nil {
		outcome = foundOutcome(res.Found, OutcomeFound, OutcomeNotFound)
	}
	if err := s.record(ctx, journal.Entry{
		Op:          journal.OpSearch,
		Mode:        mode.String(),
		Key:         key,
		Outcome:     outcome,
		Comparisons: res.Measurement.Comparisons,
		Elapsed:     res.Measurement.Elapsed,
	}); err != nil {
		return bench.SearchResult{}, err
	}

	if opErr != nil {
		s.logger.Warn("search rejected", "mode", mode.String(), "state", s.coll.State().String())
		return bench.SearchResult{}, opErr
	}
	s.logger.Info("searched",
		"mode", mode.String(),
		"key", key,
		"found", res.Found,
		"index", res.Index,
		"comparisons", res.Measurement.Comparisons,
		"elapsed", res.Measurement.Elapsed,
	)
	return res, nil
}

// Assemble applies the sort for field and checks for the key component.
func (s *Session) Assemble(ctx context.Context, field record.Field, key string) (bench.AssemblyResult, error) {
	res, opErr := s.coll.Assemble(field, key)
	if opErr != nil && OutcomeOf(opErr) == "" {
		return bench.AssemblyResult{}, opErr
	}

	outcome := OutcomeOf(opErr)
	if opErr == nil {
		outcome = foundOutcome(res.Present(), OutcomePresent, OutcomeAbsent)
	}
	if err := s.record(ctx, journal.Entry{
		Op:          journal.OpAssemble,
		Field:       field.String(),
		Mode:        modeName(opErr, res.Search.Mode),
		Key:         key,
		Outcome:     outcome,
		Comparisons: res.Sort.Measurement.Comparisons + res.Search.Measurement.Comparisons,
		Elapsed:     res.Sort.Measurement.Elapsed + res.Search.Measurement.Elapsed,
	}); err != nil {
		return bench.AssemblyResult{}, err
	}

	if opErr != nil {
		s.logger.Warn("assembly rejected", "error", opErr)
		return bench.AssemblyResult{}, opErr
	}
	s.logger.Info("assembled",
		"field", field.String(),
		"mode", res.Search.Mode.String(),
		"key", key,
		"present", res.Present(),
	)
	return res, nil
}

// History returns the journal in seq order.
func (s *Session) History(ctx context.Context) ([]journal.Entry, error) {
	return s.journal.List(ctx)
}

// Totals returns per-operation journal aggregates.
func (s *Session) Totals(ctx context.Context) ([]journal.OpTotal, error) {
	return s.journal.Totals(ctx)
}

// Count returns the number of journal entries for op ("" for all).
func (s *Session) Count(ctx context.Context, op string) (int, error) {
	return s.journal.Count(ctx, op)
}

func (s *Session) record(ctx context.Context, e journal.Entry) error {
	e.Length = s.coll.Len()
	stored, err := s.journal.Append(ctx, e)
	if err != nil {
		return fmt.Errorf("failed to journal %s: %w", e.Op, err)
	}
	s.logger.Debug("journaled", "id", stored.ID, "seq", stored.Seq, "op", stored.Op, "outcome", stored.Outcome)
	return nil
}

func foundOutcome(found bool, yes, no string) string {
	if found {
		return yes
	}
	return no
}

func modeName(err error, mode search.Mode) string {
	if err != nil {
		return ""
	}
	return mode.String()
}
