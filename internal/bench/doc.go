// Package bench holds the collection state of the workbench: a fixed
// capacity sequence of records plus the sortedByName flag that gates binary
// search.
//
// STATE MACHINE:
//
//	Empty --insert--> Unsorted --sort(name, in place)--> SortedByName
//	SortedByName --insert | sort(category|priority, in place)--> Unsorted
//
// Only Insert and SortInPlace change the flag. Nothing else infers it.
// Binary search is legal only from SortedByName; from any other state it is
// rejected with ErrCodePreconditionFailed before the search runs, so no
// comparison count is produced.
//
// PREVIEW VS IN PLACE:
//
// SortPreview sorts a fresh copy and returns it. The authoritative sequence
// and the flag are untouched. SortInPlace sorts the authoritative sequence
// and updates the flag.
//
// Every algorithm call goes through a measure.Harness, so each result carries
// the algorithm's own comparison count and the elapsed wall time.
//
// A Collection is not safe for concurrent use. It has no hidden global
// state, so a concurrent front end can wrap it with its own lock.
package bench
