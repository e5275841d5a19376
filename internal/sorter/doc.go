// Package sorter implements the instrumented sort engine.
//
// Each field has exactly one algorithm:
//
//	name     -> Bubble    (stable, early exit on a swap-free pass)
//	category -> Insertion (stable)
//	priority -> Selection (not stable)
//
// Every algorithm counts its own key comparisons. The count is a
// deterministic function of the input, not an estimate:
//
//   - Bubble: one per adjacent pair examined; an already sorted input of
//     length n costs n-1
//   - Insertion: one per backward-scan step, including the step that stops
//     the scan
//   - Selection: n(n-1)/2 regardless of data
//
// Algorithms mutate the slice they are given. Callers that want a preview
// must pass a copy (see bench.Collection.SortPreview).
package sorter
