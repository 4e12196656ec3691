package get_work_days

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/storeapi"
	getWorkDays "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_work_days"
)

const (
	msgInvalidPractitionerID = "некорректный ID врача"
	msgNotFound              = "врач не найден"
)

type Handler struct {
	useCase GetWorkDaysUseCase
	logger  Logger
}

func NewHandler(useCase GetWorkDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /internal/practitioners/{id}/work-days
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerIDStr := vars["id"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("GET /internal/practitioners/{id}/work-days - Invalid practitioner ID: %s", practitionerIDStr)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	days, err := h.useCase.Execute(r.Context(), practitionerID)
	if err != nil {
		switch {
		case errors.Is(err, getWorkDays.ErrPractitionerNotFound):
			h.logger.Warn("GET /internal/practitioners/{id}/work-days - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /internal/practitioners/{id}/work-days - Failed to get work days: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, storeapi.WorkDaysResponse{
		PractitionerID: practitionerID,
		WorkDays:       days,
	})
}
