package bench

import (
	"fmt"
	"strings"

	"github.com/roach88/sortbench/internal/measure"
	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
	"github.com/roach88/sortbench/internal/sorter"
)

// DefaultCapacity is the reference collection size.
const DefaultCapacity = 20

// State is the workflow state derived from length and the name-sort flag.
type State int

const (
	StateEmpty State = iota
	StateUnsorted
	StateSortedByName
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateUnsorted:
		return "unsorted"
	case StateSortedByName:
		return "sorted_by_name"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Target chooses whether a sort touches a copy or the authoritative sequence.
type Target int

const (
	TargetCopy Target = iota
	TargetAuthoritative
)

func (t Target) String() string {
	switch t {
	case TargetCopy:
		return "copy"
	case TargetAuthoritative:
		return "authoritative"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// ParseTarget accepts "copy"/"preview" and "authoritative"/"apply".
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy", "preview":
		return TargetCopy, nil
	case "authoritative", "apply":
		return TargetAuthoritative, nil
	default:
		return 0, fmt.Errorf("unknown sort target %q: must be copy or authoritative", s)
	}
}

// SortResult describes one measured sort.
type SortResult struct {
	Field       record.Field
	Algorithm   string
	Target      Target
	Records     []record.Record // sorted sequence; a copy the caller owns
	Measurement measure.Measurement
}

// SearchResult describes one measured search. Found=false is a completed
// search, not an error.
type SearchResult struct {
	Mode        search.Mode
	Key         string
	Index       int // -1 when not found
	Found       bool
	Measurement measure.Measurement
}

// AssemblyResult is the outcome of a final assembly: the sort that was applied
// and the key-component check that followed it.
type AssemblyResult struct {
	Sort   SortResult
	Search SearchResult
}

// Present reports whether the key component was found.
func (a AssemblyResult) Present() bool {
	return a.Search.Found
}

// Option configures a Collection.
type Option func(*Collection)

// WithClock sets the clock used for measurements.
func WithClock(clock measure.Clock) Option {
	return func(c *Collection) {
		c.harness = measure.NewHarness(clock)
	}
}

// Collection is the authoritative record sequence.
type Collection struct {
	capacity     int
	records      []record.Record
	sortedByName bool
	harness      *measure.Harness
}

// New creates an empty collection holding at most capacity records.
func New(capacity int, opts ...Option) (*Collection, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be positive, got %d", capacity)
	}
	c := &Collection{
		capacity: capacity,
		records:  make([]record.Record, 0, capacity),
		harness:  measure.NewHarness(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Cap returns the fixed capacity.
func (c *Collection) Cap() int { return c.capacity }

// Records returns a copy of the authoritative sequence.
func (c *Collection) Records() []record.Record {
	return record.Clone(c.records)
}

// IsSortedByName reports the name-sort flag.
func (c *Collection) IsSortedByName() bool {
	return c.sortedByName
}

// State returns the current workflow state.
func (c *Collection) State() State {
	switch {
	case len(c.records) == 0:
		return StateEmpty
	case c.sortedByName:
		return StateSortedByName
	default:
		return StateUnsorted
	}
}

// Insert appends rec. A full collection is left unchanged and
// ErrCodeCapacityExceeded is returned. Any successful insert clears the
// name-sort flag, even if rec happens to keep the order.
func (c *Collection) Insert(rec record.Record) error {
	if len(c.records) >= c.capacity {
		return NewCapacityError(c.capacity)
	}
	c.records = append(c.records, rec)
	c.sortedByName = false
	return nil
}

// ApplySort sorts either a copy or the authoritative sequence.
func (c *Collection) ApplySort(field record.Field, target Target) (SortResult, error) {
	switch target {
	case TargetCopy:
		return c.SortPreview(field)
	case TargetAuthoritative:
		return c.SortInPlace(field)
	default:
		return SortResult{}, fmt.Errorf("unknown sort target %v", target)
	}
}

// SortPreview sorts a copy of the sequence. The collection is not modified.
func (c *Collection) SortPreview(field record.Field) (SortResult, error) {
	alg, err := sorter.For(field)
	if err != nil {
		return SortResult{}, err
	}
	work := record.Clone(c.records)
	m := c.harness.Sort(alg, work)
	return SortResult{
		Field:       field,
		Algorithm:   alg.Name(),
		Target:      TargetCopy,
		Records:     work,
		Measurement: m,
	}, nil
}

// SortInPlace sorts the authoritative sequence and updates the name-sort
// flag: set after a name sort of a non-empty sequence, cleared otherwise.
func (c *Collection) SortInPlace(field record.Field) (SortResult, error) {
	alg, err := sorter.For(field)
	if err != nil {
		return SortResult{}, err
	}
	m := c.harness.Sort(alg, c.records)
	c.sortedByName = field == record.FieldName && len(c.records) > 0
	return SortResult{
		Field:       field,
		Algorithm:   alg.Name(),
		Target:      TargetAuthoritative,
		Records:     record.Clone(c.records),
		Measurement: m,
	}, nil
}

// Search looks key up by name. Binary mode is rejected unless the
// collection is in StateSortedByName; the search is then not attempted.
func (c *Collection) Search(mode search.Mode, key string) (SearchResult, error) {
	strategy, err := search.For(mode)
	if err != nil {
		return SearchResult{}, err
	}
	if mode == search.ModeBinary && c.State() != StateSortedByName {
		return SearchResult{}, NewPreconditionError(c.State())
	}
	idx, found, m := c.harness.Search(strategy, c.records, key)
	return SearchResult{
		Mode:        mode,
		Key:         key,
		Index:       idx,
		Found:       found,
		Measurement: m,
	}, nil
}

// Assemble applies the sort for field to the authoritative sequence, then
// checks for the key component: binary search when the sequence is now
// sorted by name, linear search otherwise.
func (c *Collection) Assemble(field record.Field, key string) (AssemblyResult, error) {
	if len(c.records) == 0 {
		return AssemblyResult{}, NewEmptyError("assembly")
	}
	sorted, err := c.SortInPlace(field)
	if err != nil {
		return AssemblyResult{}, err
	}
	mode := search.ModeLinear
	if c.sortedByName {
		mode = search.ModeBinary
	}
	found, err := c.Search(mode, key)
	if err != nil {
		return AssemblyResult{}, err
	}
	return AssemblyResult{Sort: sorted, Search: found}, nil
}
