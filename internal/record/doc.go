// Package record defines the labeled record held by the workbench and the
// three total-order comparators used by the sort and search engines.
//
// This package contains type definitions and comparators only. It imports
// nothing internal, so every other package can depend on it.
//
// Key design constraints:
//   - Text fields compare byte-wise (strings.Compare), never locale-aware
//   - Bounds on name, category and priority are enforced by the input layer,
//     not by the algorithms
//   - Records carry no behavior beyond comparison
package record
