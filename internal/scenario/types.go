package scenario

// TraceEvent is one executed flow step.
type TraceEvent struct {
	Seq         int64             `json:"seq"`
	Op          string            `json:"op"`
	Args        map[string]string `json:"args,omitempty"`
	Outcome     string            `json:"outcome"`
	Comparisons int64             `json:"comparisons"`
	ElapsedNS   int64             `json:"elapsed_ns"`
	Index       *int              `json:"index,omitempty"`
	Order       []string          `json:"order,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains the executed flow steps in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// FinalOrder is the record names after the flow.
	FinalOrder []string `json:"final_order"`

	// SortedByName is the name-sort flag after the flow.
	SortedByName bool `json:"sorted_by_name"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		Errors:     []string{},
		FinalOrder: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends e with the next sequence number.
func (r *Result) AddTrace(e TraceEvent) {
	e.Seq = int64(len(r.Trace) + 1)
	r.Trace = append(r.Trace, e)
}
