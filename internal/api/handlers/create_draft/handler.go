package create_draft

import (
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/wizard"
)

type Handler struct {
	registry DraftRegistry
	logger   Logger
}

func NewHandler(registry DraftRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle POST /api/v1/drafts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, d := h.registry.Create()

	h.logger.Info("POST /drafts - Draft created: draft_id=%s", id)
	handlers.RespondJSON(w, http.StatusCreated, wizard.FromSnapshot(id, d.Snapshot()))
}
