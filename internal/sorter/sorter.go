package sorter

import (
	"fmt"

	"github.com/roach88/sortbench/internal/record"
)

// Algorithm sorts records in place on a fixed key and reports how many key
// comparisons it performed.
type Algorithm interface {
	Name() string
	Key() record.Field
	Sort(recs []record.Record) int64
}

// For returns the algorithm bound to a field.
func For(field record.Field) (Algorithm, error) {
	switch field {
	case record.FieldName:
		return Bubble{}, nil
	case record.FieldCategory:
		return Insertion{}, nil
	case record.FieldPriority:
		return Selection{}, nil
	default:
		return nil, fmt.Errorf("no sort algorithm for %v", field)
	}
}

// IsSorted reports whether recs is non-decreasing on field.
func IsSorted(recs []record.Record, field record.Field) bool {
	cmp := record.ComparatorFor(field)
	for i := 1; i < len(recs); i++ {
		if cmp(recs[i-1], recs[i]) > 0 {
			return false
		}
	}
	return true
}

// Bubble sorts by name with adjacent swaps.
type Bubble struct{}

func (Bubble) Name() string      { return "bubble" }
func (Bubble) Key() record.Field { return record.FieldName }

// Sort never swaps equal names, so duplicates keep their input order.
func (Bubble) Sort(recs []record.Record) int64 {
	var comparisons int64
	n := len(recs)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-1-i; j++ {
			comparisons++
			if record.CompareName(recs[j], recs[j+1]) > 0 {
				recs[j], recs[j+1] = recs[j+1], recs[j]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}
	return comparisons
}

// Insertion sorts by category, shifting larger elements right.
type Insertion struct{}

func (Insertion) Name() string      { return "insertion" }
func (Insertion) Key() record.Field { return record.FieldCategory }

func (Insertion) Sort(recs []record.Record) int64 {
	var comparisons int64
	for i := 1; i < len(recs); i++ {
		key := recs[i]
		j := i - 1
		for j >= 0 {
			comparisons++
			if record.CompareCategory(recs[j], key) <= 0 {
				break
			}
			recs[j+1] = recs[j]
			j--
		}
		recs[j+1] = key
	}
	return comparisons
}

// Selection sorts by priority, swapping each position with the minimum of
// the unsorted remainder.
type Selection struct{}

func (Selection) Name() string      { return "selection" }
func (Selection) Key() record.Field { return record.FieldPriority }

// Sort may reorder records of equal priority.
func (Selection) Sort(recs []record.Record) int64 {
	var comparisons int64
	n := len(recs)
	for i := 0; i < n-1; i++ {
		minIdx := i
		for j := i + 1; j < n; j++ {
			comparisons++
			if record.ComparePriority(recs[j], recs[minIdx]) < 0 {
				minIdx = j
			}
		}
		if minIdx != i {
			recs[i], recs[minIdx] = recs[minIdx], recs[i]
		}
	}
	return comparisons
}
