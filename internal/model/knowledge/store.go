package knowledge

import "strings"

// Store exposes role knowledge lookups for prompt composition and handlers.
type Store interface {
	List() []Snapshot
	ForRole(role string) (Snapshot, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Snapshot
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied snapshots.
func NewMemoryStore(items []Snapshot) *MemoryStore {
	return &MemoryStore{items: append([]Snapshot(nil), items...)}
}

// List returns all known snapshots.
func (s *MemoryStore) List() []Snapshot {
	return append([]Snapshot(nil), s.items...)
}

// ForRole looks up the snapshot for a role tag, case-insensitively.
func (s *MemoryStore) ForRole(role string) (Snapshot, bool) {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, item := range s.items {
		if item.Role == role {
			return item, true
		}
	}
	return Snapshot{}, false
}
