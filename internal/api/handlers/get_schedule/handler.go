package get_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
)

const (
	msgInvalidPractitionerID = "некорректный ID врача"
	msgNotFound              = "врач не найден"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/practitioners/{practitionerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerIDStr := vars["practitionerId"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("GET /practitioners/{id}/schedule - Invalid practitioner ID: %s", practitionerIDStr)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	result, err := h.service.Get(r.Context(), practitionerID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPractitionerNotFound):
			h.logger.Warn("GET /practitioners/{id}/schedule - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /practitioners/{id}/schedule - Failed to get schedule: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /practitioners/{id}/schedule - Schedule retrieved: practitioner_id=%d, rules=%d",
		practitionerID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
