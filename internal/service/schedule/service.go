package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/slotgrid"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Service сервис управления недельным расписанием врачей
type Service struct {
	scheduleRepo     ScheduleRepository
	practitionerRepo PractitionerRepository
	txManager        TransactionManager
	invalidator      WorkDaysInvalidator
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания.
// invalidator может быть nil, если кэш рабочих дней не используется.
func NewService(
	scheduleRepo ScheduleRepository,
	practitionerRepo PractitionerRepository,
	txManager TransactionManager,
	invalidator WorkDaysInvalidator,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:     scheduleRepo,
		practitionerRepo: practitionerRepo,
		txManager:        txManager,
		invalidator:      invalidator,
		logger:           logger,
	}
}

// Get возвращает недельное расписание врача
func (s *Service) Get(ctx context.Context, practitionerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule of practitioner=%d", practitionerID)

	if err := s.checkPractitioner(ctx, "Get", practitionerID); err != nil {
		return nil, err
	}

	rules, err := s.scheduleRepo.GetByPractitioner(ctx, practitionerID)
	if err != nil {
		s.logger.Error("Get: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(practitionerID, rules), nil
}

// Replace заменяет недельное расписание врача целиком.
// Пустой список правил означает, что врач не принимает.
func (s *Service) Replace(ctx context.Context, practitionerID int64, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Replace: replacing schedule of practitioner=%d with %d rules", practitionerID, len(req.Rules))

	// 1. Валидируем правила
	rules, err := toDomainRules(req.Rules)
	if err != nil {
		s.logger.Warn("Replace: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем врача
	if err := s.checkPractitioner(ctx, "Replace", practitionerID); err != nil {
		return nil, err
	}

	// 3. Заменяем правила в транзакции
	var created []*domain.ScheduleRule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		replaced, err := s.scheduleRepo.ReplaceForPractitioner(txCtx, practitionerID, rules)
		if err != nil {
			return err
		}
		created = replaced
		return nil
	})
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrDuplicateWeekday) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateWeekday, err)
		}
		s.logger.Error("Replace: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: Replace - repository error: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш рабочих дней
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, practitionerID); err != nil {
			s.logger.Warn("Replace: failed to invalidate work days of practitioner=%d: %v", practitionerID, err)
		}
	}

	s.logger.Info("Replace: practitioner=%d now works on %v", practitionerID, domain.WorkDaysOf(created).Names())
	return models.FromDomainRules(practitionerID, created), nil
}

// Вспомогательные методы

func (s *Service) checkPractitioner(ctx context.Context, op string, practitionerID int64) error {
	if practitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if _, err := s.practitionerRepo.GetPractitioner(ctx, practitionerID); err != nil {
		if errors.Is(err, catalogRepo.ErrPractitionerNotFound) {
			s.logger.Warn("%s: practitioner id=%d not found", op, practitionerID)
			return ErrPractitionerNotFound
		}
		s.logger.Error("%s: failed to get practitioner id=%d: %v", op, practitionerID, err)
		return fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	return nil
}

// toDomainRules валидирует правила и конвертирует их в domain модели
func toDomainRules(reqs []models.RuleRequest) ([]*domain.ScheduleRule, error) {
	rules := make([]*domain.ScheduleRule, 0, len(reqs))
	var seen domain.WeekdaySet

	for i, r := range reqs {
		weekday, err := domain.ParseWeekday(r.Weekday)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidInput, i, err)
		}
		if seen.Has(weekday) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateWeekday, domain.WeekdayName(weekday))
		}
		seen = seen.Add(weekday)

		start, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: startTime: %v", ErrInvalidInput, i, err)
		}
		end, err := types.NewBoundaryFromString(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: endTime: %v", ErrInvalidInput, i, err)
		}

		rule := &domain.ScheduleRule{
			Weekday:             weekday,
			StartTime:           start,
			EndTime:             end,
			SlotDurationMinutes: r.SlotDurationMinutes,
		}

		// Правило должно давать хотя бы один слот
		grid, err := slotgrid.Generate(rule)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", ErrInvalidInput, i, err)
		}
		if len(grid) == 0 {
			return nil, fmt.Errorf("%w: rule %d: interval %s-%s is shorter than one slot", ErrInvalidInput, i, start, end)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}
