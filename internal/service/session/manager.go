package session

import (
	"log"
	"sync"
	"time"
)

// sweepDelay keeps the expiry sweep off the critical startup path.
const sweepDelay = 5 * time.Second

// Manager hands out one session per (user, context) pair and owns the
// one-shot cache garbage collection.
type Manager struct {
	deps Deps

	mu       sync.Mutex
	byKey    map[string]*Session
	byID     map[string]*Session
	sweeping sync.Once
}

// NewManager builds a manager over shared collaborators.
func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:  deps,
		byKey: make(map[string]*Session),
		byID:  make(map[string]*Session),
	}
}

// Open returns the live session for (userID, contextLabel), mounting a new
// one on first use. The expiry sweep is scheduled on the first open.
func (m *Manager) Open(userID, role, contextLabel string) *Session {
	m.sweeping.Do(m.scheduleSweep)

	key := userID + "\x00" + contextLabel

	m.mu.Lock()
	if existing, ok := m.byKey[key]; ok {
		m.mu.Unlock()
		return existing
	}

	s := New(userID, role, contextLabel, m.deps)
	m.byKey[key] = s
	m.byID[s.ID()] = s
	m.mu.Unlock()

	s.Mount()
	return s
}

// Get looks up a session by its handle.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	return s, ok
}

func (m *Manager) scheduleSweep() {
	time.AfterFunc(sweepDelay, func() {
		if removed := m.deps.Cache.SweepExpired(); removed > 0 {
			log.Printf("[session] cache sweep removed %d expired entries", removed)
		}
	})
}
