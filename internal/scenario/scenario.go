package scenario

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/sortbench/internal/bench"
	"github.com/roach88/sortbench/internal/record"
	"github.com/roach88/sortbench/internal/search"
)

// Scenario is a scripted session with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Capacity overrides the collection capacity. Zero means the default.
	Capacity int `yaml:"capacity,omitempty"`

	// Setup records are inserted before the flow and must all fit.
	Setup []record.Record `yaml:"setup,omitempty"`

	// Flow is the sequence of operations under test.
	Flow []Step `yaml:"flow"`

	// Assertions validate the final session.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one flow operation.
type Step struct {
	// Op is insert, sort, search or assemble.
	Op string `yaml:"op"`

	// Record is the record to insert (insert only).
	Record *record.Record `yaml:"record,omitempty"`

	// Field is the sort key (sort, assemble).
	Field string `yaml:"field,omitempty"`

	// Target is copy or authoritative (sort). Defaults to authoritative.
	Target string `yaml:"target,omitempty"`

	// Mode is binary or linear (search).
	Mode string `yaml:"mode,omitempty"`

	// Key is the name to look for (search, assemble).
	Key string `yaml:"key,omitempty"`

	// Expect validates the step's outcome. If nil, any outcome is accepted.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes a step's expected outcome. Unset fields are not checked.
type Expect struct {
	// Case is the expected outcome name (Success, Found, NotFound, ...).
	Case string `yaml:"case"`

	// Comparisons is the exact expected comparison count.
	Comparisons *int64 `yaml:"comparisons,omitempty"`

	// Index is the expected match index (search, assemble).
	Index *int `yaml:"index,omitempty"`

	// Order is the expected record names after the step (sort, assemble).
	Order []string `yaml:"order,omitempty"`
}

// Assertion validates the final session.
type Assertion struct {
	Type    string   `yaml:"type"`
	Value   *bool    `yaml:"value,omitempty"`
	State   string   `yaml:"state,omitempty"`
	Names   []string `yaml:"names,omitempty"`
	Op      string   `yaml:"op,omitempty"`
	Outcome string   `yaml:"outcome,omitempty"`
	Ops     []string `yaml:"ops,omitempty"`
	Count   int      `yaml:"count,omitempty"`
}

// Flow op names.
const (
	OpInsert   = "insert"
	OpSort     = "sort"
	OpSearch   = "search"
	OpAssemble = "assemble"
)

// Assertion type constants.
const (
	AssertSortedByName = "sorted_by_name"
	AssertState        = "state"
	AssertFinalOrder   = "final_order"
	AssertTraceCount   = "trace_count"
	AssertTraceOrder   = "trace_order"
	AssertJournalCount = "journal_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains unknown
// fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse parses scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &s, nil
}

// validate checks that required fields are present and well formed.
// Record contents are checked later against the record schema.
func validate(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Capacity < 0 {
		return fmt.Errorf("capacity must be non-negative")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	for i := range s.Flow {
		if err := validateStep(i, &s.Flow[i]); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(i int, step *Step) error {
	switch step.Op {
	case OpInsert:
		if step.Record == nil {
			return fmt.Errorf("flow[%d]: record is required for insert", i)
		}
	case OpSort:
		if _, err := record.ParseField(step.Field); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		if step.Target != "" {
			if _, err := bench.ParseTarget(step.Target); err != nil {
				return fmt.Errorf("flow[%d]: %w", i, err)
			}
		}
	case OpSearch:
		if _, err := search.ParseMode(step.Mode); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		if step.Key == "" {
			return fmt.Errorf("flow[%d]: key is required for search", i)
		}
	case OpAssemble:
		if _, err := record.ParseField(step.Field); err != nil {
			return fmt.Errorf("flow[%d]: %w", i, err)
		}
		if step.Key == "" {
			return fmt.Errorf("flow[%d]: key is required for assemble", i)
		}
	case "":
		return fmt.Errorf("flow[%d]: op is required", i)
	default:
		return fmt.Errorf("flow[%d]: unknown op %q", i, step.Op)
	}

	if step.Expect != nil && step.Expect.Case == "" {
		return fmt.Errorf("flow[%d].expect: case is required", i)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertSortedByName:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for sorted_by_name", index)
		}
	case AssertState:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for state", index)
		}
	case AssertFinalOrder:
		if a.Names == nil {
			return fmt.Errorf("assertions[%d]: names is required for final_order", index)
		}
	case AssertTraceCount, AssertJournalCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for %s", index, a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
