package submit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
)

const (
	resultSuccess     = "success"
	resultInvalid     = "invalid"
	resultConflict    = "conflict"
	resultUnavailable = "unavailable"
	resultTransport   = "transport_error"
)

// UseCase use case для отправки черновика записи
type UseCase struct {
	store    ClinicStore
	resolver AvailabilityResolver
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case; metrics может быть nil
func NewUseCase(store ClinicStore, resolver AvailabilityResolver, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		store:    store,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute отправляет черновик в хранилище клиники.
// Делает ровно одну попытку записи; при успехе черновик закрывается.
func (uc *UseCase) Execute(ctx context.Context, d *draft.Draft) (*domain.BookingReference, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: draft is required", ErrInvalidInput)
	}

	// 1. Повторная проверка всех шагов, без сетевых запросов при ошибке
	sub, err := d.BeginSubmit()
	if err != nil {
		uc.logger.Warn("SubmitBooking: draft is not submittable: %v", err)
		uc.observe("", resultInvalid)
		return nil, err
	}

	kind := domain.BookingKindAppointment
	if sub.Service.IsTreatment() {
		kind = domain.BookingKindTreatment
	}

	uc.logger.Info("SubmitBooking: kind=%s, practitioner=%d, service=%d, date=%s, time=%s",
		kind, sub.PractitionerID, sub.Service.ID(), sub.Date, sub.Time)

	// 2. Повторно запрашиваем слоты: выбранное время могли занять
	sets, err := uc.resolver.SlotsFor(ctx, sub.PractitionerID, sub.Date)
	if err != nil {
		d.AbortSubmit()
		uc.logger.Warn("SubmitBooking: availability re-check failed: %v", err)
		uc.observe(kind, resultUnavailable)
		return nil, err
	}

	if !sets.IsAvailable(sub.Time) {
		d.InvalidateSchedule()
		uc.logger.Warn("SubmitBooking: slot %s %s of practitioner=%d is no longer available",
			sub.Date, sub.Time, sub.PractitionerID)
		uc.observe(kind, resultConflict)
		return nil, fmt.Errorf("%w: %s %s", ErrSlotConflict, sub.Date, sub.Time)
	}

	// 3. Собираем запись
	var commit domain.BookingCommit
	if kind == domain.BookingKindTreatment {
		commit = domain.NewTreatmentCommit(sub.Patient, sub.PractitionerID, sub.Service, sub.Plan, sub.Time)
	} else {
		commit = domain.NewAppointmentCommit(sub.Patient, sub.PractitionerID, sub.Service, sub.Date, sub.Time)
	}

	// 4. Единственная попытка записи
	ref, err := uc.store.CommitBooking(ctx, commit)
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			d.InvalidateSchedule()
			uc.logger.Warn("SubmitBooking: store rejected slot %s %s: %v", sub.Date, sub.Time, err)
			uc.observe(kind, resultConflict)
			return nil, fmt.Errorf("%w: %v", ErrSlotConflict, err)
		}

		d.AbortSubmit()
		uc.logger.Error("SubmitBooking: failed to commit booking: %v", err)
		uc.observe(kind, resultTransport)
		return nil, fmt.Errorf("%w: %v", ErrSubmitTransport, err)
	}
	if ref == nil || ref.ID <= 0 {
		d.AbortSubmit()
		uc.logger.Error("SubmitBooking: store returned empty booking reference")
		uc.observe(kind, resultTransport)
		return nil, fmt.Errorf("%w: empty booking reference", ErrSubmitTransport)
	}

	result := *ref
	if result.Kind == "" {
		result.Kind = kind
	}

	// 5. Закрываем черновик
	d.CompleteSubmit(result)
	uc.observe(kind, resultSuccess)
	uc.logger.Info("SubmitBooking: committed %s id=%d", result.Kind, result.ID)

	return &result, nil
}

func (uc *UseCase) observe(kind domain.BookingKind, result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveSubmission(string(kind), result)
	}
}
