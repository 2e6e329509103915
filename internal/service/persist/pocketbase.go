package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// pocketbaseTime is the created/updated format the records API emits.
const pocketbaseTime = "2006-01-02 15:04:05.000Z"

// PocketBaseStore implements RecordStore against a PocketBase records API.
type PocketBaseStore struct {
	baseURL    string
	identity   string
	password   string
	collection string
	client     *http.Client

	mu    sync.RWMutex
	token string
}

// NewPocketBaseStore builds a store for one collection. Call Authenticate
// before use when the collection requires admin access.
func NewPocketBaseStore(baseURL, identity, password, collection string) *PocketBaseStore {
	return &PocketBaseStore{
		baseURL:    baseURL,
		identity:   identity,
		password:   password,
		collection: collection,
		client:     &http.Client{Timeout: 5 * time.Second},
	}
}

// Authenticate obtains an admin bearer token. PocketBase moved the admin
// auth endpoint in v0.23; the legacy path is tried first and the superuser
// path on 404.
func (s *PocketBaseStore) Authenticate(ctx context.Context) error {
	if s.identity == "" || s.password == "" {
		return fmt.Errorf("admin identity or password not configured")
	}

	payload := map[string]string{"identity": s.identity, "password": s.password}

	token, status, err := s.authRequest(ctx, "/api/admins/auth-with-password", payload)
	if err == nil && status == http.StatusNotFound {
		token, status, err = s.authRequest(ctx, "/api/collections/_superusers/auth-with-password", payload)
	}
	if err != nil {
		return fmt.Errorf("auth request: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("auth rejected with status %d", status)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *PocketBaseStore) authRequest(ctx context.Context, path string, payload map[string]string) (token string, status int, err error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", resp.StatusCode, nil
	}

	var parsed struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", resp.StatusCode, err
	}
	return parsed.Token, resp.StatusCode, nil
}

func (s *PocketBaseStore) authorize(req *http.Request) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

type pocketbaseRecord struct {
	ID      string `json:"id"`
	User    string `json:"user"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Context string `json:"context"`
	Created string `json:"created"`
}

func (r pocketbaseRecord) toRecord() Record {
	created, err := time.Parse(pocketbaseTime, r.Created)
	if err != nil {
		created = time.Time{}
	}
	return Record{
		ID:      r.ID,
		User:    r.User,
		Role:    r.Role,
		Content: r.Content,
		Context: r.Context,
		Created: created,
	}
}

// Create appends one chat message record.
func (s *PocketBaseStore) Create(ctx context.Context, rec Record) (string, error) {
	body, err := json.Marshal(map[string]string{
		"user":    rec.User,
		"role":    rec.Role,
		"content": rec.Content,
		"context": rec.Context,
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/api/collections/%s/records", s.baseURL, s.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("create record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("create record status %d", resp.StatusCode)
	}

	var parsed pocketbaseRecord
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode created record: %w", err)
	}
	return parsed.ID, nil
}

// List fetches records oldest-first for reconciliation.
func (s *PocketBaseStore) List(ctx context.Context, q Query) ([]Record, error) {
	filter := fmt.Sprintf("user = %q", q.User)
	if q.Context != "" {
		filter += fmt.Sprintf(" && context = %q", q.Context)
	}

	params := url.Values{}
	params.Set("page", "1")
	params.Set("perPage", strconv.Itoa(q.Limit))
	params.Set("sort", "created")
	params.Set("filter", filter)

	endpoint := fmt.Sprintf("%s/api/collections/%s/records?%s", s.baseURL, s.collection, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	s.authorize(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list records status %d", resp.StatusCode)
	}

	var parsed struct {
		Items []pocketbaseRecord `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode record list: %w", err)
	}

	records := make([]Record, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		records = append(records, item.toRecord())
	}
	return records, nil
}
