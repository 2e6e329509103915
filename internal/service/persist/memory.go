package persist

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory RecordStore for tests and offline runs.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore returns an empty in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Create appends a record and assigns it an id.
func (s *MemoryStore) Create(_ context.Context, rec Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = uuid.NewString()
	if rec.Created.IsZero() {
		rec.Created = time.Now().UTC()
	}
	s.records = append(s.records, rec)
	return rec.ID, nil
}

// List returns matching records in insertion (creation) order.
func (s *MemoryStore) List(_ context.Context, q Query) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		if q.User != "" && rec.User != q.User {
			continue
		}
		if q.Context != "" && rec.Context != q.Context {
			continue
		}
		matched = append(matched, rec)
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}
