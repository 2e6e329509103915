package chat

import "time"

// Roles a transcript message may carry. System messages are synthesized
// locally when a turn fails outright; they never come from the remote store.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single transcript entry. ID stays empty until the message has
// been persisted remotely. Ordering is append-only by arrival.
type Message struct {
	ID      string    `json:"id,omitempty"`
	Role    string    `json:"role"`
	Content string    `json:"content"`
	Created time.Time `json:"created"`
}

// CacheEntry is the durable form of a transcript. Timestamp is the last-write
// time and drives TTL expiry; it is never older than the newest message in Data.
type CacheEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Data      []Message `json:"data"`
}
