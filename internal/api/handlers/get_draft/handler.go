package get_draft

import (
	"net/http"

	"github.com/gorilla/mux"

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

// Handle GET /api/v1/drafts/{draftId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	d, err := h.registry.Get(draftID)
	if err != nil {
		wizard.RespondError(w, h.logger, "GET /drafts/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, wizard.FromSnapshot(draftID, d.Snapshot()))
}
