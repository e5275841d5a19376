// Package scenario runs scripted workbench sessions and checks their outcome.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	capacity: 20                # optional, defaults to 20
//	setup:                      # records inserted before the flow
//	  - {name: Core, category: Part, priority: 5}
//	flow:
//	  - op: sort
//	    field: name
//	    target: authoritative
//	    expect:
//	      case: Success
//	      comparisons: 3
//	      order: [Ammo, Blade, Core]
//	  - op: search
//	    mode: binary
//	    key: Blade
//	    expect: {case: Found, index: 1}
//	assertions:
//	  - {type: sorted_by_name, value: true}
//	  - {type: journal_count, op: search, count: 1}
//
// Flow ops are insert (with a record), sort (field, target), search (mode,
// key) and assemble (field, key).
//
// # Assertion Types
//
//   - sorted_by_name: the final name-sort flag equals value
//   - state: the final workflow state (empty, unsorted, sorted_by_name)
//   - final_order: the final record names, in order
//   - trace_count: a flow op (optionally with an outcome) appears count times
//   - trace_order: flow ops first appear in the listed order
//   - journal_count: the session journal holds count entries for op
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory journal, a step clock that advances one
// microsecond per reading, and sequential journal IDs. Identical scenarios
// therefore produce byte-identical traces, which golden files pin down.
package scenario
