package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/gynmultiverse/concierge/backend/internal/handler/chat"
	knowledgeHandler "github.com/gynmultiverse/concierge/backend/internal/handler/knowledge"
	middlewarePkg "github.com/gynmultiverse/concierge/backend/internal/middleware"
	knowledgeModel "github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
	"github.com/gynmultiverse/concierge/backend/internal/service/session"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(sessions *session.Manager, kb knowledgeModel.Store) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(sessions).RegisterRoutes(api)
		knowledgeHandler.New(kb).RegisterRoutes(api)
	})

	return r
}
