package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator generates predictable, unique IDs.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario with a fresh generator produces byte-identical journals.
//
// Thread-safety: SequentialIDGenerator is safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequentialIDGenerator creates a generator producing prefix-0001,
// prefix-0002 and so on.
//
// If prefix is empty, "test-run" is used.
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "test-run"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
//
// Implements journal.IDGenerator.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%04d", g.prefix, g.next)
}
