package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gynmultiverse/concierge/backend/internal/cache"
	"github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
	"github.com/gynmultiverse/concierge/backend/internal/service/ai"
	"github.com/gynmultiverse/concierge/backend/internal/service/intel"
	"github.com/gynmultiverse/concierge/backend/internal/service/session"
)

func setupRouter() *chi.Mux {
	manager := session.NewManager(session.Deps{
		Cache:     cache.New(cache.NewMemoryStore()),
		Router:    ai.NewRouter(nil, intel.New(nil, nil)),
		Knowledge: knowledge.NewMemoryStore(knowledge.Seed()),
	})

	r := chi.NewRouter()
	New(manager).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeSession(t *testing.T, resp *httptest.ResponseRecorder) (string, []map[string]any) {
	t.Helper()
	var parsed struct {
		SessionID string           `json:"sessionId"`
		Messages  []map[string]any `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	return parsed.SessionID, parsed.Messages
}

func TestOpenSession(t *testing.T) {
	r := setupRouter()

	resp := postJSON(t, r, "/chat/session", map[string]string{
		"userId": "u1", "role": "owner", "context": "Dashboard",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	id, messages := decodeSession(t, resp)
	if id == "" {
		t.Fatal("expected a session id")
	}
	if len(messages) != 1 || messages[0]["role"] != "assistant" {
		t.Fatalf("expected welcome transcript, got %+v", messages)
	}
}

func TestOpenSessionMissingUser(t *testing.T) {
	r := setupRouter()

	resp := postJSON(t, r, "/chat/session", map[string]string{"context": "Dashboard"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendMessageAppendsTurn(t *testing.T) {
	r := setupRouter()

	resp := postJSON(t, r, "/chat/session", map[string]string{"userId": "u1", "role": "student", "context": ""})
	id, _ := decodeSession(t, resp)

	resp = postJSON(t, r, "/chat/session/"+id+"/messages", map[string]string{"content": "help me study"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	_, messages := decodeSession(t, resp)
	if len(messages) != 3 {
		t.Fatalf("expected welcome + user + assistant, got %d messages", len(messages))
	}
	if messages[1]["role"] != "user" || messages[2]["role"] != "assistant" {
		t.Fatalf("unexpected turn ordering: %+v", messages)
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	r := setupRouter()

	resp := postJSON(t, r, "/chat/session/missing/messages", map[string]string{"content": "hi"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestClearHistory(t *testing.T) {
	r := setupRouter()

	resp := postJSON(t, r, "/chat/session", map[string]string{"userId": "u1", "role": "owner", "context": "Dashboard"})
	id, _ := decodeSession(t, resp)

	req := httptest.NewRequest(http.MethodDelete, "/chat/session/"+id+"/messages", nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	if del.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", del.Code)
	}

	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/chat/session/"+id+"/messages", nil))
	_, messages := decodeSession(t, get)
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript after clear, got %+v", messages)
	}
}
