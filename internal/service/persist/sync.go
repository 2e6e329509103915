package persist

import (
	"context"
	"log"
	"time"

	"github.com/gynmultiverse/concierge/backend/internal/model/chat"
)

const writeTimeout = 10 * time.Second

// Sync wraps a RecordStore with the session's persistence policy: writes are
// fire-and-forget and reconciliation reads are best-effort. The failure hook
// makes the error policy pluggable (log, metric, or silent).
type Sync struct {
	store  RecordStore
	report func(error)
}

// NewSync builds a Sync over store. store may be nil (persistence disabled);
// report may be nil, which falls back to operator logging.
func NewSync(store RecordStore, report func(error)) *Sync {
	if report == nil {
		report = func(err error) {
			log.Printf("[persist] %v", err)
		}
	}
	return &Sync{store: store, report: report}
}

// Enabled reports whether a remote store is attached.
func (s *Sync) Enabled() bool {
	return s != nil && s.store != nil
}

// WriteAsync persists one message in the background. Failures go to the
// report hook; they never block or fail the visible turn.
func (s *Sync) WriteAsync(userID, contextLabel string, msg chat.Message) {
	if !s.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		_, err := s.store.Create(ctx, Record{
			User:    userID,
			Role:    msg.Role,
			Content: msg.Content,
			Context: contextLabel,
		})
		if err != nil {
			s.report(err)
		}
	}()
}

// Reconcile fetches the authoritative remote history for a user, oldest
// first, capped at limit. An empty result means "nothing to reconcile".
func (s *Sync) Reconcile(ctx context.Context, userID, contextLabel string, limit int) ([]chat.Message, error) {
	if !s.Enabled() {
		return nil, nil
	}

	records, err := s.store.List(ctx, Query{User: userID, Context: contextLabel, Limit: limit})
	if err != nil {
		s.report(err)
		return nil, err
	}

	messages := make([]chat.Message, 0, len(records))
	for _, rec := range records {
		messages = append(messages, chat.Message{
			ID:      rec.ID,
			Role:    rec.Role,
			Content: rec.Content,
			Created: rec.Created,
		})
	}
	return messages, nil
}
