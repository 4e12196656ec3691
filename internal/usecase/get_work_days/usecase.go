package get_work_days

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
)

// UseCase use case для получения рабочих дней врача
type UseCase struct {
	scheduleRepo     ScheduleRepository
	practitionerRepo PractitionerRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, practitionerRepo PractitionerRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo:     scheduleRepo,
		practitionerRepo: practitionerRepo,
		logger:           logger,
	}
}

// Execute возвращает дни недели, на которые у врача есть хотя бы одно правило расписания
func (uc *UseCase) Execute(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	if practitionerID <= 0 {
		return 0, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем врача
	practitioner, err := uc.practitionerRepo.GetPractitioner(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPractitionerNotFound) {
			uc.logger.Warn("GetWorkDays: practitioner id=%d not found", practitionerID)
			return 0, ErrPractitionerNotFound
		}
		uc.logger.Error("GetWorkDays: failed to get practitioner id=%d: %v", practitionerID, err)
		return 0, fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}
	if !practitioner.IsActive {
		uc.logger.Warn("GetWorkDays: practitioner id=%d is inactive", practitionerID)
		return 0, ErrPractitionerNotFound
	}

	// 2. Правила расписания
	rules, err := uc.scheduleRepo.GetByPractitioner(ctx, practitionerID)
	if err != nil {
		uc.logger.Error("GetWorkDays: failed to get schedule rules: %v", err)
		return 0, fmt.Errorf("%w: failed to get schedule rules: %v", ErrInternal, err)
	}

	return domain.WorkDaysOf(rules), nil
}
