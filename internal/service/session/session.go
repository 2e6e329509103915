// Package session orchestrates one conversational surface: instant hydrate
// from the local cache, background reconciliation against the remote store,
// and single-flight message turns with optimistic updates. Provider and
// persistence failures are absorbed into the transcript; callers never see
// an error from a turn.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gynmultiverse/concierge/backend/internal/cache"
	"github.com/gynmultiverse/concierge/backend/internal/model/chat"
	"github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
	"github.com/gynmultiverse/concierge/backend/internal/service/ai"
	"github.com/gynmultiverse/concierge/backend/internal/service/persist"
)

// State enumerates the session lifecycle. A session is never fatal: every
// error path lands back in StateIdle with the failure recorded as transcript
// data.
type State int

const (
	StateUninitialized State = iota
	StateIdle
	StateAwaitingProvider
)

// String names the state for logs and the HTTP surface.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingProvider:
		return "awaiting_provider"
	default:
		return "uninitialized"
	}
}

const errorReply = "Error: Could not process request."

// Session holds the live transcript for one (user, context) pair.
type Session struct {
	id           string
	userID       string
	role         string
	contextLabel string
	cacheKey     string

	cache  *cache.Cache
	router *ai.Router
	sync   *persist.Sync
	kb     knowledge.Store
	now    func() time.Time

	mu       sync.Mutex
	state    State
	messages []chat.Message
}

// Deps are the collaborators a session needs. Cache and Router are
// mandatory; Sync and Knowledge may be nil.
type Deps struct {
	Cache     *cache.Cache
	Router    *ai.Router
	Sync      *persist.Sync
	Knowledge knowledge.Store
	Clock     func() time.Time
}

// New creates an unmounted session for a user on a context surface.
func New(userID, role, contextLabel string, deps Deps) *Session {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &Session{
		id:           uuid.NewString(),
		userID:       userID,
		role:         role,
		contextLabel: contextLabel,
		cacheKey:     cache.Key(contextLabel),
		cache:        deps.Cache,
		router:       deps.Router,
		sync:         deps.Sync,
		kb:           deps.Knowledge,
		now:          now,
	}
}

// ID returns the session handle.
func (s *Session) ID() string { return s.id }

// UserID returns the owning user.
func (s *Session) UserID() string { return s.userID }

// Context returns the context label this session is partitioned by.
func (s *Session) Context() string { return s.contextLabel }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a snapshot of the visible transcript.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.messages...)
}

// reconcileTimeout bounds the background fetch so a dead record store
// cannot pin a goroutine forever.
const reconcileTimeout = 15 * time.Second

// Mount hydrates the transcript for immediate render and kicks off the
// background reconciliation against the remote store. The reconciliation
// runs detached: it must outlive whatever request triggered the mount.
func (s *Session) Mount() {
	s.hydrate()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		s.Reconcile(ctx)
	}()
}

// hydrate loads a fresh cache entry if one exists, otherwise seeds the
// transcript and cache with the context's welcome message. Expired or
// corrupt entries are removed by the cache itself.
func (s *Session) hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateUninitialized {
		return
	}

	if cached, ok := s.cache.Load(s.cacheKey); ok {
		s.messages = cached
	} else {
		s.messages = []chat.Message{{Role: chat.RoleAssistant, Content: s.welcomeText()}}
		s.cache.Save(s.cacheKey, s.messages)
	}
	s.state = StateIdle
}

func (s *Session) welcomeText() string {
	if s.contextLabel == "Wellness Coach" {
		return "Hello! I'm your personal Wellness Coach. I can help you track your fitness, improve your sleep, or suggest mindfulness exercises. How are you feeling today?"
	}
	subject := s.contextLabel
	if subject == "" {
		subject = "the platform"
	}
	return fmt.Sprintf("Hello. I am ready to assist with platform configuration or data analysis. How can I help you with **%s** today?", subject)
}

// Reconcile replaces the local transcript with the authoritative remote
// history when any exists (stale-while-revalidate; last reconciliation
// wins). A failed or empty fetch leaves the hydrated state untouched. A
// reconciliation landing after a fresh optimistic send can clobber it if
// that send's remote write has not landed yet; this is the accepted
// best-effort consistency model.
func (s *Session) Reconcile(ctx context.Context) {
	if s.sync == nil || !s.sync.Enabled() {
		return
	}

	remote, err := s.sync.Reconcile(ctx, s.userID, s.contextLabel, s.cache.MaxItems())
	if err != nil {
		log.Printf("[session] background sync failed, using cached data: %v", err)
		return
	}
	if len(remote) == 0 {
		return
	}

	s.mu.Lock()
	s.messages = remote
	s.cache.Save(s.cacheKey, s.messages)
	s.mu.Unlock()
}

// SendMessage runs one turn. Blank input and sends while a turn is already
// in flight are silent no-ops (single-flight). The user message becomes
// visible and cached before any network work starts; the turn always ends
// back in StateIdle with either an assistant reply or a system error
// message appended.
func (s *Session) SendMessage(ctx context.Context, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	s.mu.Lock()
	if s.state == StateAwaitingProvider {
		s.mu.Unlock()
		return
	}
	if s.state == StateUninitialized {
		s.mu.Unlock()
		s.hydrate()
		s.mu.Lock()
	}

	userMsg := chat.Message{Role: chat.RoleUser, Content: text, Created: s.now()}
	s.messages = append(s.messages, userMsg)
	s.cache.Save(s.cacheKey, s.messages)
	s.state = StateAwaitingProvider

	// Provider input is the snapshot at call time; later appends are not seen.
	history := append([]chat.Message(nil), s.messages[:len(s.messages)-1]...)
	s.mu.Unlock()

	if s.sync != nil {
		s.sync.WriteAsync(s.userID, s.contextLabel, userMsg)
	}

	contextLabel := s.contextLabel
	if contextLabel == "" {
		contextLabel = "General"
	}
	req := ai.Request{
		SystemPrompt: ai.ComposeSystemPrompt(s.role, contextLabel, s.kb),
		History:      history,
		Query:        text,
		Context:      contextLabel,
		UserID:       s.userID,
		Role:         s.role,
	}

	reply, err := s.router.Send(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle

	if err != nil {
		log.Printf("[session] turn failed for context=%s: %v", s.contextLabel, err)
		s.messages = append(s.messages, chat.Message{Role: chat.RoleSystem, Content: errorReply, Created: s.now()})
		s.cache.Save(s.cacheKey, s.messages)
		return
	}

	assistantMsg := chat.Message{Role: chat.RoleAssistant, Content: reply, Created: s.now()}
	s.messages = append(s.messages, assistantMsg)
	s.cache.Save(s.cacheKey, s.messages)

	if s.sync != nil {
		s.sync.WriteAsync(s.userID, s.contextLabel, assistantMsg)
	}
}

// ClearHistory drops the visible transcript and deletes the cache entry.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.cache.Clear(s.cacheKey)
	if s.state == StateUninitialized {
		s.state = StateIdle
	}
}
