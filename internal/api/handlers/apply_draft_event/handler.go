package apply_draft_event

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/wizard"
)

const (
	op = "POST /drafts/{id}/events"

	msgInvalidRequest = "некорректный формат запроса"
)

type Handler struct {
	registry DraftRegistry
	services ServiceLookup
	logger   Logger
}

func NewHandler(registry DraftRegistry, services ServiceLookup, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		services: services,
		logger:   logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/events
// Ошибки валидации шага возвращаются 422 вместе с полями.
// Снимок черновика хранит те же ошибки до следующего успешного события.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	d, err := h.registry.Get(draftID)
	if err != nil {
		wizard.RespondError(w, h.logger, op, err)
		return
	}

	var req wizard.EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: draft_id=%s, error=%v", op, draftID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	event, err := req.ToEvent(r.Context(), h.services)
	if err != nil {
		wizard.RespondError(w, h.logger, op, err)
		return
	}

	if err := d.Transition(r.Context(), event); err != nil {
		wizard.RespondError(w, h.logger, op, err)
		return
	}

	snap := d.Snapshot()
	h.logger.Info("%s - Event applied: draft_id=%s, type=%s, step=%s", op, draftID, req.Type, snap.Step)
	handlers.RespondJSON(w, http.StatusOK, wizard.FromSnapshot(draftID, snap))
}
