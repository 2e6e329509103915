package chat

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/gynmultiverse/concierge/backend/pkg/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser UI is served from a different origin in development.
	CheckOrigin: func(*http.Request) bool { return true },
}

type wsInbound struct {
	Content string `json:"content"`
}

type wsOutbound struct {
	State    string `json:"state"`
	Messages any    `json:"messages"`
}

// handleWebSocket is the live chat transport: the client sends {content}
// frames, each answered with the state and full transcript after the turn.
// The first frame sent is the current transcript so the UI can render
// immediately.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if err := conn.WriteJSON(wsOutbound{State: s.State().String(), Messages: s.Messages()}); err != nil {
		return
	}

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[ws] read failed for session=%s: %v", s.ID(), err)
			}
			return
		}

		s.SendMessage(r.Context(), inbound.Content)

		if err := conn.WriteJSON(wsOutbound{State: s.State().String(), Messages: s.Messages()}); err != nil {
			return
		}
	}
}
