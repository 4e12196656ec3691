package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

const (
	msgInvalidPractitionerID = "некорректный ID врача"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidData           = "некорректные правила расписания"
	msgDuplicateWeekday      = "на один день недели задано несколько правил"
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

// Handle PUT /api/v1/practitioners/{practitionerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerIDStr := vars["practitionerId"]

	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("PUT /practitioners/{id}/schedule - Invalid practitioner ID: %s", practitionerIDStr)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	// Декодируем body
	var req models.ReplaceScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /practitioners/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Replace(r.Context(), practitionerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPractitionerNotFound):
			h.logger.Warn("PUT /practitioners/{id}/schedule - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, schedule.ErrDuplicateWeekday):
			h.logger.Warn("PUT /practitioners/{id}/schedule - Duplicate weekday: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgDuplicateWeekday)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /practitioners/{id}/schedule - Invalid rules: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidData)

		default:
			h.logger.Error("PUT /practitioners/{id}/schedule - Failed to replace schedule: practitioner_id=%d, error=%v",
				practitionerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /practitioners/{id}/schedule - Schedule replaced: practitioner_id=%d, rules=%d",
		practitionerID, len(result.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
