package submit_draft

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers/wizard"
)

const op = "POST /drafts/{id}/submit"

type Handler struct {
	registry DraftRegistry
	useCase  SubmitUseCase
	logger   Logger
}

func NewHandler(registry DraftRegistry, useCase SubmitUseCase, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		useCase:  useCase,
		logger:   logger,
	}
}

// Handle POST /api/v1/drafts/{draftId}/submit
// При конфликте слота черновик возвращается на шаг выбора даты и времени (409),
// при сбое отправки остается на шаге подтверждения (502) и может быть отправлен повторно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draftId"]

	d, err := h.registry.Get(draftID)
	if err != nil {
		wizard.RespondError(w, h.logger, op, err)
		return
	}

	ref, err := h.useCase.Execute(r.Context(), d)
	if err != nil {
		wizard.RespondError(w, h.logger, op, err)
		return
	}

	h.logger.Info("%s - Draft submitted: draft_id=%s, reference=%d, kind=%s", op, draftID, ref.ID, ref.Kind)
	handlers.RespondJSON(w, http.StatusCreated, wizard.FromSnapshot(draftID, d.Snapshot()))
}
