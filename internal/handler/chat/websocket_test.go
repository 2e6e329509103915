package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

func TestWebSocketTurn(t *testing.T) {
	r := setupRouter()

	resp := postJSON(t, r, "/chat/session", map[string]string{"userId": "u1", "role": "owner", "context": "Dashboard"})
	id, _ := decodeSession(t, resp)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/session/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	defer conn.Close()

	var initial struct {
		State    string           `json:"state"`
		Messages []map[string]any `json:"messages"`
	}
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("read initial frame: %v", err)
	}
	if len(initial.Messages) != 1 {
		t.Fatalf("expected welcome transcript on connect, got %+v", initial.Messages)
	}

	if err := conn.WriteJSON(map[string]string{"content": "hello there"}); err != nil {
		t.Fatalf("write err: %v", err)
	}

	var after struct {
		State    string           `json:"state"`
		Messages []map[string]any `json:"messages"`
	}
	if err := conn.ReadJSON(&after); err != nil {
		t.Fatalf("read turn frame: %v", err)
	}
	if after.State != "idle" {
		t.Fatalf("expected idle after turn, got %q", after.State)
	}
	if len(after.Messages) != 3 {
		t.Fatalf("expected three messages after turn, got %d", len(after.Messages))
	}
}

func TestWebSocketUnknownSession(t *testing.T) {
	r := setupRouter()
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat/session/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail for unknown session")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 handshake response, got %+v", resp)
	}
}
