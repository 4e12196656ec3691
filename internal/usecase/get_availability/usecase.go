package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/slotgrid"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// UseCase use case для получения свободных и занятых слотов врача на дату
type UseCase struct {
	scheduleRepo     ScheduleRepository
	bookingRepo      BookingRepository
	practitionerRepo PractitionerRepository
	minNoticeMinutes int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	practitionerRepo PractitionerRepository,
	minNoticeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:     scheduleRepo,
		bookingRepo:      bookingRepo,
		practitionerRepo: practitionerRepo,
		minNoticeMinutes: minNoticeMinutes,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req == nil || req.PractitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailability: practitioner=%d, date=%s", req.PractitionerID, req.Date)

	// 2. Проверяем врача
	practitioner, err := uc.practitionerRepo.GetPractitioner(ctx, req.PractitionerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPractitionerNotFound) {
			uc.logger.Warn("GetAvailability: practitioner id=%d not found", req.PractitionerID)
			return nil, ErrPractitionerNotFound
		}
		uc.logger.Error("GetAvailability: failed to get practitioner id=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}
	if !practitioner.IsActive {
		uc.logger.Warn("GetAvailability: practitioner id=%d is inactive", req.PractitionerID)
		return nil, ErrPractitionerNotFound
	}

	response := &Response{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
		Slots: domain.SlotSets{
			Available: make([]types.TimeString, 0),
			Occupied:  make([]types.TimeString, 0),
		},
	}

	// 3. Правило расписания на день недели
	rule, err := uc.scheduleRepo.GetByPractitionerAndWeekday(ctx, req.PractitionerID, req.Date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			uc.logger.Info("GetAvailability: practitioner=%d does not work on %s",
				req.PractitionerID, domain.WeekdayName(req.Date.Weekday()))
			return response, nil
		}
		uc.logger.Error("GetAvailability: failed to get schedule rule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule rule: %v", ErrInternal, err)
	}

	// 4. Сетка слотов
	grid, err := slotgrid.Generate(rule)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots for rule id=%d: %v", rule.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	response.SlotDurationMinutes = rule.SlotDurationMinutes

	// 5. Активные записи на дату
	bookings, err := uc.bookingRepo.GetByPractitionerWithFilter(ctx, domain.PractitionerBookingsFilter{
		PractitionerID: req.PractitionerID,
		StartDate:      &req.Date,
		EndDate:        &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Разбиение сетки
	response.Slots = slotgrid.Partition(grid, rule.SlotDurationMinutes, bookings, req.Date,
		uc.timeProvider.Now(), uc.minNoticeMinutes)

	uc.logger.Info("GetAvailability: practitioner=%d date=%s available=%d occupied=%d",
		req.PractitionerID, req.Date, len(response.Slots.Available), len(response.Slots.Occupied))

	return response, nil
}
