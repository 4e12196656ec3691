package abandon_draft

import (
	"net/http"

	"github.com/gorilla/mux"

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

// Handle DELETE /api/v1/drafts/{draftId}
// Черновик удаляется без обращений к хранилищу
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	if err := h.registry.Abandon(draftID); err != nil {
		wizard.RespondError(w, h.logger, "DELETE /drafts/{id}", err)
		return
	}

	h.logger.Info("DELETE /drafts/{id} - Draft abandoned: draft_id=%s", draftID)
	w.WriteHeader(http.StatusNoContent)
}
