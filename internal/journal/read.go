package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// List returns every entry in seq order.
func (j *Journal) List(ctx context.Context) ([]Entry, error) {
	return j.query(ctx, `
		SELECT id, seq, op, field, target, mode, search_key, outcome, comparisons, elapsed_ns, length
		FROM measurements
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`)
}

// ListByOp returns the entries for one operation in seq order.
func (j *Journal) ListByOp(ctx context.Context, op string) ([]Entry, error) {
	return j.query(ctx, `
		SELECT id, seq, op, field, target, mode, search_key, outcome, comparisons, elapsed_ns, length
		FROM measurements
		WHERE op = ?
		ORDER BY seq ASC, id ASC COLLATE BINARY
	`, op)
}

// Count returns how many entries exist for op. An empty op counts all entries.
func (j *Journal) Count(ctx context.Context, op string) (int, error) {
	var n int
	var err error
	if op == "" {
		err = j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&n)
	} else {
		err = j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements WHERE op = ?", op).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return n, nil
}

// Totals aggregates count, comparisons and elapsed time per operation,
// ordered by operation name.
func (j *Journal) Totals(ctx context.Context) ([]OpTotal, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT op, COUNT(*), COALESCE(SUM(comparisons), 0), COALESCE(SUM(elapsed_ns), 0)
		FROM measurements
		GROUP BY op
		ORDER BY op ASC COLLATE BINARY
	`)
	if err != nil {
		return nil, fmt.Errorf("query totals: %w", err)
	}
	defer rows.Close()

	totals := []OpTotal{}
	for rows.Next() {
		var t OpTotal
		var elapsed int64
		if err := rows.Scan(&t.Op, &t.Count, &t.Comparisons, &elapsed); err != nil {
			return nil, fmt.Errorf("scan totals: %w", err)
		}
		t.Elapsed = time.Duration(elapsed)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate totals: %w", err)
	}
	return totals, nil
}

func (j *Journal) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var e Entry
	var elapsed int64
	err := rows.Scan(
		&e.ID,
		&e.Seq,
		&e.Op,
		&e.Field,
		&e.Target,
		&e.Mode,
		&e.Key,
		&e.Outcome,
		&e.Comparisons,
		&elapsed,
		&e.Length,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	e.Elapsed = time.Duration(elapsed)
	return e, nil
}
