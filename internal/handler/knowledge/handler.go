package knowledge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	knowledgeModel "github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
	"github.com/gynmultiverse/concierge/backend/pkg/utils"
)

// Handler exposes the role knowledge snapshots read-only.
type Handler struct {
	store knowledgeModel.Store
}

// New creates the knowledge handler.
func New(store knowledgeModel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the knowledge routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/knowledge", h.handleList)
	r.Get("/knowledge/{role}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.store.ForRole(chi.URLParam(r, "role"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "role not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, snapshot)
}
