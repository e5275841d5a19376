package journal

import (
	"context"
	"fmt"
)

// Append stamps e with a fresh ID and the next seq, writes it, and returns
// the stored entry. Any ID or Seq already set on e is replaced.
func (j *Journal) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.Op == "" {
		return Entry{}, fmt.Errorf("append entry: op is required")
	}
	if e.Outcome == "" {
		return Entry{}, fmt.Errorf("append entry: outcome is required")
	}

	e.ID = j.ids.Generate()
	e.Seq = j.seq.Next()

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO measurements
		(id, seq, op, field, target, mode, search_key, outcome, comparisons, elapsed_ns, length)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Seq,
		e.Op,
		e.Field,
		e.Target,
		e.Mode,
		e.Key,
		e.Outcome,
		e.Comparisons,
		int64(e.Elapsed),
		e.Length,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("append entry: %w", err)
	}

	return e, nil
}
