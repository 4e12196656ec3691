package wizard

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/classifier"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/scheduler"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/sessions"
	submitBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/submit_booking"
)

// ErrCatalogUnavailable возвращается, когда каталог услуг не ответил
var ErrCatalogUnavailable = errors.New("wizard: catalog unavailable")

const (
	msgValidation       = "данные шага некорректны"
	msgInvalidService   = "услуга не может быть выбрана"
	msgInvalidSchedule  = "некорректные параметры курса лечения"
	msgUnavailable      = "данные о доступности временно недоступны, повторите попытку"
	msgSlotConflict     = "выбранный слот уже занят, выберите другую дату и время"
	msgSubmitTransport  = "не удалось отправить запись, повторите попытку"
	msgDraftNotFound    = "черновик не найден"
	msgInvalidStep      = "действие недоступно на текущем шаге"
	msgDraftClosed      = "черновик уже отправлен"
	msgSubmitInProgress = "черновик отправляется"
)

// FieldError ошибка формата полей события (до применения к черновику)
type FieldError struct {
	Fields map[string]string
}

func newFieldError(field, message string) *FieldError {
	return &FieldError{Fields: map[string]string{field: message}}
}

// Error реализует error
func (e *FieldError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "wizard: invalid event: " + strings.Join(parts, "; ")
}

// RespondError переводит ошибку черновика в HTTP ответ
func RespondError(w http.ResponseWriter, log Logger, op string, err error) {
	var validationErr *draft.ValidationError
	var fieldErr *FieldError

	switch {
	case errors.As(err, &validationErr):
		log.Warn("%s - Validation failed: %v", op, err)
		handlers.RespondValidation(w, msgValidation, validationErr.Fields)

	case errors.As(err, &fieldErr):
		log.Warn("%s - Invalid event: %v", op, err)
		handlers.RespondValidation(w, msgValidation, fieldErr.Fields)

	case errors.Is(err, classifier.ErrInvalidService):
		log.Warn("%s - Invalid service: %v", op, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidService)

	case errors.Is(err, scheduler.ErrInvalidSchedule):
		log.Warn("%s - Invalid schedule: %v", op, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSchedule)

	case errors.Is(err, availability.ErrInvalidRequest):
		log.Warn("%s - Invalid availability request: %v", op, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgValidation)

	case errors.Is(err, availability.ErrAvailabilityUnavailable), errors.Is(err, ErrCatalogUnavailable):
		log.Error("%s - Store unavailable: %v", op, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

	case errors.Is(err, submitBooking.ErrSlotConflict):
		log.Warn("%s - Slot conflict: %v", op, err)
		handlers.RespondConflict(w, msgSlotConflict)

	case errors.Is(err, submitBooking.ErrSubmitTransport):
		log.Error("%s - Submit failed: %v", op, err)
		handlers.RespondError(w, http.StatusBadGateway, msgSubmitTransport)

	case errors.Is(err, sessions.ErrDraftNotFound):
		log.Warn("%s - Draft not found: %v", op, err)
		handlers.RespondNotFound(w, msgDraftNotFound)

	case errors.Is(err, draft.ErrInvalidTransition):
		log.Warn("%s - Invalid transition: %v", op, err)
		handlers.RespondConflict(w, msgInvalidStep)

	case errors.Is(err, draft.ErrDraftClosed):
		log.Warn("%s - Draft closed: %v", op, err)
		handlers.RespondConflict(w, msgDraftClosed)

	case errors.Is(err, draft.ErrSubmitInProgress):
		log.Warn("%s - Submit in progress: %v", op, err)
		handlers.RespondConflict(w, msgSubmitInProgress)

	default:
		log.Error("%s - Unexpected error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
