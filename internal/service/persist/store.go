// Package persist is the best-effort bridge between live sessions and the
// remote record store: fire-and-forget writes on every turn, plus the
// background stale-while-revalidate fetch that reconciles a mounted session
// against the authoritative remote history.
package persist

import (
	"context"
	"time"
)

// Record is one persisted chat message, scoped to a user and context label.
type Record struct {
	ID      string
	User    string
	Role    string
	Content string
	Context string
	Created time.Time
}

// Query selects records for reconciliation: all messages for a user,
// optionally narrowed to one context, oldest first, capped at Limit.
type Query struct {
	User    string
	Context string
	Limit   int
}

// RecordStore is the remote append/list capability the core consumes. The
// store assigns record ids; there is no uniqueness constraint beyond that.
type RecordStore interface {
	Create(ctx context.Context, rec Record) (string, error)
	List(ctx context.Context, q Query) ([]Record, error)
}
