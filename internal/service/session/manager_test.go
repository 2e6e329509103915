package session_test

import (
	"testing"

	"github.com/gynmultiverse/concierge/backend/internal/cache"
	"github.com/gynmultiverse/concierge/backend/internal/service/session"
)

func TestManagerReusesSessionPerUserAndContext(t *testing.T) {
	m := session.NewManager(newDeps(cache.NewMemoryStore(), nil, nil))

	first := m.Open("u1", "owner", "Dashboard")
	second := m.Open("u1", "owner", "Dashboard")
	if first != second {
		t.Fatal("expected the same session for the same user and context")
	}

	other := m.Open("u1", "owner", "Wellness Coach")
	if other == first {
		t.Fatal("expected distinct sessions for distinct contexts")
	}

	otherUser := m.Open("u2", "owner", "Dashboard")
	if otherUser == first {
		t.Fatal("expected distinct sessions for distinct users")
	}
}

func TestManagerGetByID(t *testing.T) {
	m := session.NewManager(newDeps(cache.NewMemoryStore(), nil, nil))
	s := m.Open("u1", "owner", "Dashboard")

	got, ok := m.Get(s.ID())
	if !ok || got != s {
		t.Fatal("expected lookup by session id")
	}

	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected miss for unknown id")
	}
}
