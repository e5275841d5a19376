// Package journal provides a SQLite-backed log of every measured operation
// in a workbench session.
//
// The journal is session scoped. The CLI always opens it on ":memory:", so
// nothing survives the process; a file path is accepted only so tests and
// tooling can inspect a database directly.
//
// # Ordering
//
//   - Every entry is stamped with a strictly increasing seq from Sequence
//   - All queries include ORDER BY seq ASC, id ASC COLLATE BINARY
//   - Entry IDs come from an IDGenerator (UUIDv7 in production, sequential
//     in tests), so identical sessions produce identical journals in tests
//
// # Database Configuration
//
//   - Single connection: an in-memory database exists per connection
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
package journal
