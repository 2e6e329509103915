package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gynmultiverse/concierge/backend/internal/service/session"
	"github.com/gynmultiverse/concierge/backend/pkg/utils"
)

// Handler exposes chat sessions over HTTP.
type Handler struct {
	sessions *session.Manager
}

// New creates the chat handler.
func New(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/session", h.handleOpenSession)
	r.Get("/chat/session/{sessionID}/messages", h.handleListMessages)
	r.Post("/chat/session/{sessionID}/messages", h.handleSendMessage)
	r.Delete("/chat/session/{sessionID}/messages", h.handleClearHistory)
	r.Get("/chat/session/{sessionID}/ws", h.handleWebSocket)
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	Context   string `json:"context"`
	State     string `json:"state"`
	Messages  any    `json:"messages"`
}

func (h *Handler) respondSession(w http.ResponseWriter, status int, s *session.Session) {
	utils.RespondJSON(w, status, sessionResponse{
		SessionID: s.ID(),
		Context:   s.Context(),
		State:     s.State().String(),
		Messages:  s.Messages(),
	})
}

// handleOpenSession mounts (or returns) the session for a user and context.
func (h *Handler) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  string `json:"userId"`
		Role    string `json:"role"`
		Context string `json:"context"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	s := h.sessions.Open(payload.UserID, payload.Role, payload.Context)
	h.respondSession(w, http.StatusCreated, s)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	h.respondSession(w, http.StatusOK, s)
}

// handleSendMessage runs one chat turn. Blank content and a turn already in
// flight both come back as the unchanged transcript, mirroring the silent
// no-op contract of the session itself.
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.SendMessage(r.Context(), payload.Content)
	h.respondSession(w, http.StatusOK, s)
}

func (h *Handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	s.ClearHistory()
	utils.RespondNoContent(w)
}
