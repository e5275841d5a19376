package journal

import "time"

// Operation names stored in the op column.
const (
	OpInsert   = "insert"
	OpSort     = "sort"
	OpSearch   = "search"
	OpAssemble = "assemble"
)

// Entry is one journaled operation.
//
// Field, Target, Mode and Key are empty when they do not apply to Op.
// Length is the collection length after the operation.
type Entry struct {
	ID          string        `json:"id"`
	Seq         int64         `json:"seq"`
	Op          string        `json:"op"`
	Field       string        `json:"field,omitempty"`
	Target      string        `json:"target,omitempty"`
	Mode        string        `json:"mode,omitempty"`
	Key         string        `json:"key,omitempty"`
	Outcome     string        `json:"outcome"`
	Comparisons int64         `json:"comparisons"`
	Elapsed     time.Duration `json:"elapsed_ns"`
	Length      int           `json:"length"`
}

// OpTotal aggregates the journal by operation.
type OpTotal struct {
	Op          string        `json:"op"`
	Count       int           `json:"count"`
	Comparisons int64         `json:"comparisons"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}
