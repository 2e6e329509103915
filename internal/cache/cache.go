// Package cache keeps per-context transcripts in a durable local namespace
// so a session renders instantly on mount, before any remote fetch lands.
package cache

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gynmultiverse/concierge/backend/internal/model/chat"
)

const (
	// KeyPrefix namespaces transcript entries within the shared store.
	KeyPrefix = "gyn_multiverse_cache_"

	// DefaultExpiry is how long an untouched transcript stays usable.
	DefaultExpiry = 24 * time.Hour

	// DefaultMaxItems bounds a cached transcript to the most recent N
	// messages to prevent storage bloat.
	DefaultMaxItems = 50
)

// Key derives the cache key for a context label. Empty labels share the
// "global" entry.
func Key(contextLabel string) string {
	if contextLabel == "" {
		contextLabel = "global"
	}
	return KeyPrefix + contextLabel
}

// Cache layers transcript semantics (trimming, TTL, self-healing) over a
// plain Store. No method ever returns an error: a broken or corrupt cache
// degrades to a cold start, never to a failed session.
type Cache struct {
	store    Store
	expiry   time.Duration
	maxItems int
	now      func() time.Time
}

// Option adjusts cache behavior, mostly for tests.
type Option func(*Cache)

// WithExpiry overrides the TTL applied to entries.
func WithExpiry(d time.Duration) Option {
	return func(c *Cache) { c.expiry = d }
}

// WithMaxItems overrides the transcript length bound.
func WithMaxItems(n int) Option {
	return func(c *Cache) { c.maxItems = n }
}

// WithClock substitutes the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New wraps store with transcript semantics.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		expiry:   DefaultExpiry,
		maxItems: DefaultMaxItems,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxItems reports the transcript length bound.
func (c *Cache) MaxItems() int {
	return c.maxItems
}

// Load returns the cached transcript for key. Corrupt entries are deleted
// and reported as a miss; so are entries older than the TTL, which keeps a
// stale key from surviving a mount.
func (c *Cache) Load(key string) ([]chat.Message, bool) {
	raw, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}

	var entry chat.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.store.Delete(key)
		return nil, false
	}

	if c.now().Sub(entry.Timestamp) > c.expiry {
		c.store.Delete(key)
		return nil, false
	}

	if len(entry.Data) == 0 {
		return nil, false
	}
	return entry.Data, true
}

// Save stores messages under key, trimmed to the most recent MaxItems and
// stamped with the current time. Safe to call on every append.
func (c *Cache) Save(key string, messages []chat.Message) {
	if len(messages) > c.maxItems {
		messages = messages[len(messages)-c.maxItems:]
	}

	entry := chat.CacheEntry{
		Timestamp: c.now(),
		Data:      messages,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	c.store.Set(key, string(raw))
}

// Clear deletes the entry for key outright.
func (c *Cache) Clear(key string) {
	c.store.Delete(key)
}

// SweepExpired walks every key under the cache namespace and removes entries
// past their TTL, deleting corrupt ones along the way. It returns how many
// entries were removed. Designed to run once, off the critical path, shortly
// after startup; it is idempotent and safe alongside live sessions.
func (c *Cache) SweepExpired() int {
	removed := 0
	for _, key := range c.store.Keys() {
		if !strings.HasPrefix(key, KeyPrefix) {
			continue
		}
		raw, ok := c.store.Get(key)
		if !ok {
			continue
		}
		var entry chat.CacheEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			c.store.Delete(key)
			removed++
			continue
		}
		if c.now().Sub(entry.Timestamp) > c.expiry {
			c.store.Delete(key)
			removed++
		}
	}
	return removed
}
