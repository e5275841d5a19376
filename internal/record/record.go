package record

import (
	"fmt"
	"strings"
)

// Bounds enforced at input time. Algorithms assume validated records.
const (
	MaxNameLen     = 29
	MaxCategoryLen = 19
	MinPriority    = 1
	MaxPriority    = 10
)

// Record is a single labeled component in the collection.
type Record struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Priority int    `json:"priority" yaml:"priority"`
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%s, p%d)", r.Name, r.Category, r.Priority)
}

// Field identifies the key a sort operates on.
type Field int

const (
	FieldName Field = iota
	FieldCategory
	FieldPriority
)

// Fields lists every sortable field in menu order.
var Fields = []Field{FieldName, FieldCategory, FieldPriority}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldCategory:
		return "category"
	case FieldPriority:
		return "priority"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ParseField maps a field name back to its Field.
// Matching is case-insensitive.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "category":
		return FieldCategory, nil
	case "priority":
		return FieldPriority, nil
	default:
		return 0, fmt.Errorf("unknown field %q: must be one of name, category, priority", s)
	}
}

// Comparator is a three-way comparison returning <0, 0 or >0.
type Comparator func(a, b Record) int

// CompareName orders records by name, byte-wise.
func CompareName(a, b Record) int {
	return strings.Compare(a.Name, b.Name)
}

// CompareCategory orders records by category, byte-wise.
func CompareCategory(a, b Record) int {
	return strings.Compare(a.Category, b.Category)
}

// ComparePriority orders records by ascending priority.
func ComparePriority(a, b Record) int {
	switch {
	case a.Priority < b.Priority:
		return -1
	case a.Priority > b.Priority:
		return 1
	default:
		return 0
	}
}

// ComparatorFor returns the comparator for a field.
// Panics on an unknown field; callers obtain fields from ParseField or Fields.
func ComparatorFor(f Field) Comparator {
	switch f {
	case FieldName:
		return CompareName
	case FieldCategory:
		return CompareCategory
	case FieldPriority:
		return ComparePriority
	default:
		panic(fmt.Sprintf("record: no comparator for %v", f))
	}
}

// Clone returns an independent copy of recs.
// A nil input yields an empty, non-nil slice.
func Clone(recs []Record) []Record {
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}
