// Package search locates a record by name and counts the comparisons spent
// doing so.
package search

import (
	"fmt"
	"strings"

	"github.com/roach88/sortbench/internal/record"
)

// Mode selects a search strategy.
type Mode int

const (
	ModeBinary Mode = iota
	ModeLinear
)

func (m Mode) String() string {
	switch m {
	case ModeBinary:
		return "binary"
	case ModeLinear:
		return "linear"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps "binary" or "linear" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "binary":
		return ModeBinary, nil
	case "linear":
		return ModeLinear, nil
	default:
		return 0, fmt.Errorf("unknown search mode %q: must be binary or linear", s)
	}
}

// Strategy finds key among recs by name.
// found is false when no record matches; index is then -1.
type Strategy interface {
	Mode() Mode
	Find(recs []record.Record, key string) (index int, found bool, comparisons int64)
}

// For returns the strategy for a mode.
func For(mode Mode) (Strategy, error) {
	switch mode {
	case ModeBinary:
		return Binary{}, nil
	case ModeLinear:
		return Linear{}, nil
	default:
		return nil, fmt.Errorf("no search strategy for %v", mode)
	}
}

// Binary halves [left, right] until the key is hit or the interval is empty.
//
// recs must already be sorted by name; Binary does not check. With duplicate
// names the returned index is whichever one the probe path reaches first,
// which is not necessarily the first occurrence.
type Binary struct{}

func (Binary) Mode() Mode { return ModeBinary }

func (Binary) Find(recs []record.Record, key string) (int, bool, int64) {
	var comparisons int64
	left, right := 0, len(recs)-1
	for left <= right {
		mid := left + (right-left)/2
		comparisons++
		switch c := strings.Compare(recs[mid].Name, key); {
		case c == 0:
			return mid, true, comparisons
		case c < 0:
			left = mid + 1
		default:
			right = mid - 1
		}
	}
	return -1, false, comparisons
}

// Linear scans from index 0 and stops at the first match.
type Linear struct{}

func (Linear) Mode() Mode { return ModeLinear }

func (Linear) Find(recs []record.Record, key string) (int, bool, int64) {
	var comparisons int64
	for i := range recs {
		comparisons++
		if recs[i].Name == key {
			return i, true, comparisons
		}
	}
	return -1, false, comparisons
}
