package ledger

import (
	"testing"

	"github.com/google/uuid"
)

// SeedEntry appends a pre-built entry to an in-memory store. Entries must be
// seeded in chronological order. Fails the test when handed any other Store
// implementation. Test helper.
func SeedEntry(tb testing.TB, s Store, e Entry) {
	tb.Helper()

	mem, ok := s.(*inMemoryStore)
	if !ok {
		tb.Fatalf("SeedEntry requires the in-memory store, got %T", s)
	}

	mem.mu.Lock()
	defer mem.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	mem.entries = append(mem.entries, e)
}
