package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

const (
	msgInvalidPractitionerID = "некорректный ID врача"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgNotFound              = "врач не найден"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /internal/practitioners/{id}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем id врача из URL
	practitionerIDStr := vars["id"]
	practitionerID, err := strconv.ParseInt(practitionerIDStr, 10, 64)
	if err != nil || practitionerID <= 0 {
		h.logger.Warn("GET /internal/practitioners/{id}/availability - Invalid practitioner ID: %s", practitionerIDStr)
		handlers.RespondBadRequest(w, msgInvalidPractitionerID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /internal/practitioners/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(practitionerID, dateStr)
	if err != nil {
		h.logger.Warn("GET /internal/practitioners/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrPractitionerNotFound):
			h.logger.Warn("GET /internal/practitioners/{id}/availability - Practitioner not found: practitioner_id=%d", practitionerID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /internal/practitioners/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /internal/practitioners/{id}/availability - Failed to get availability: practitioner_id=%d, date=%s, error=%v",
				practitionerID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /internal/practitioners/{id}/availability - practitioner_id=%d, date=%s, available=%d, occupied=%d",
		practitionerID, dateStr, len(result.Slots.Available), len(result.Slots.Occupied))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
