package commit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/api/storeapi"
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	commitBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/commit_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgSlotNotAvailable     = "выбранный слот уже занят"
	msgServiceNotFound      = "услуга не найдена"
	msgPractitionerNotFound = "врач не найден"
	msgPatientNotFound      = "пациент не найден"
	msgKindMismatch         = "вид записи не соответствует услуге"
	msgPriceMismatch        = "цена не совпадает с каталогом"
	msgInvalidPlan          = "некорректный план лечения"
	msgInvalidBookingDate   = "некорректная дата записи"
	msgNotWorkingDay        = "врач не принимает в этот день"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgTooLateToBook        = "слишком поздно для записи на этот слот"
	msgInvalidData          = "некорректные данные записи"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req storeapi.CommitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /internal/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в domain модель (с парсингом времени)
	commit, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("POST /internal/bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	ref, err := h.useCase.Execute(r.Context(), &commit)
	if err != nil {
		h.respondUseCaseError(w, &req, err)
		return
	}

	h.logger.Info("POST /internal/bookings - Booking committed: id=%d, kind=%s, practitioner_id=%d, date=%s, time=%s",
		ref.ID, ref.Kind, req.PractitionerID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, storeapi.CommitResponse{ID: ref.ID, Kind: string(ref.Kind)})
}

func (h *Handler) respondUseCaseError(w http.ResponseWriter, req *storeapi.CommitRequest, err error) {
	status, msg := http.StatusInternalServerError, ""

	switch {
	case errors.Is(err, domain.ErrSlotTaken), errors.Is(err, commitBooking.ErrSlotNotAvailable):
		status, msg = http.StatusConflict, msgSlotNotAvailable

	case errors.Is(err, commitBooking.ErrServiceNotFound):
		status, msg = http.StatusNotFound, msgServiceNotFound
	case errors.Is(err, commitBooking.ErrPractitionerNotFound):
		status, msg = http.StatusNotFound, msgPractitionerNotFound
	case errors.Is(err, commitBooking.ErrPatientNotFound):
		status, msg = http.StatusNotFound, msgPatientNotFound

	case errors.Is(err, commitBooking.ErrKindMismatch):
		status, msg = http.StatusUnprocessableEntity, msgKindMismatch
	case errors.Is(err, commitBooking.ErrPriceMismatch):
		status, msg = http.StatusUnprocessableEntity, msgPriceMismatch
	case errors.Is(err, commitBooking.ErrInvalidPlan):
		status, msg = http.StatusUnprocessableEntity, msgInvalidPlan
	case errors.Is(err, commitBooking.ErrInvalidDate):
		status, msg = http.StatusUnprocessableEntity, msgInvalidBookingDate
	case errors.Is(err, commitBooking.ErrNotWorkingDay):
		status, msg = http.StatusUnprocessableEntity, msgNotWorkingDay
	case errors.Is(err, commitBooking.ErrInvalidTimeSlot):
		status, msg = http.StatusUnprocessableEntity, msgInvalidTimeSlot
	case errors.Is(err, commitBooking.ErrTooLateToBook):
		status, msg = http.StatusUnprocessableEntity, msgTooLateToBook
	case errors.Is(err, commitBooking.ErrInvalidInput):
		status, msg = http.StatusUnprocessableEntity, msgInvalidData
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("POST /internal/bookings - Failed to commit booking: practitioner_id=%d, service_id=%d, error=%v",
			req.PractitionerID, req.ServiceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Warn("POST /internal/bookings - Rejected with %d: practitioner_id=%d, service_id=%d, date=%s, time=%s, error=%v",
		status, req.PractitionerID, req.ServiceID, req.Date, req.Time, err)
	handlers.RespondError(w, status, msg)
}
