package commit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	patientRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/patient"
	scheduleRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/classifier"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/slotgrid"
	"github.com/m04kA/SMC-ClinicBooking/pkg/pgerr"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// UseCase use case для фиксации записи на прием или курса лечения
type UseCase struct {
	bookingRepo      BookingRepository
	scheduleRepo     ScheduleRepository
	catalogRepo      CatalogRepository
	patientRepo      PatientRepository
	treatmentRepo    TreatmentRepository
	txManager        TransactionManager
	minNoticeMinutes int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	patientRepo PatientRepository,
	treatmentRepo TreatmentRepository,
	txManager TransactionManager,
	minNoticeMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		scheduleRepo:     scheduleRepo,
		catalogRepo:      catalogRepo,
		patientRepo:      patientRepo,
		treatmentRepo:    treatmentRepo,
		txManager:        txManager,
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

// Execute фиксирует запись.
// Использует сериализуемую транзакцию: конкурирующая запись на тот же слот
// завершается ошибкой, совместимой с domain.ErrSlotTaken.
func (uc *UseCase) Execute(ctx context.Context, commit *domain.BookingCommit) (*domain.BookingReference, error) {
	// 1. Валидация входных данных
	if err := validateCommit(commit); err != nil {
		uc.logger.Warn("CommitBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CommitBooking: kind=%s, practitioner=%d, service=%d, date=%s, time=%s",
		commit.Kind, commit.PractitionerID, commit.ServiceID, commit.Date, commit.Time)

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	today := types.DateOf(now)

	if commit.Date.Before(today) {
		uc.logger.Warn("CommitBooking: date %s is in the past", commit.Date)
		return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, commit.Date)
	}

	// 3. Получаем и классифицируем услугу
	service, err := uc.getService(ctx, commit.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := validateKind(commit, service); err != nil {
		uc.logger.Warn("CommitBooking: %v", err)
		return nil, err
	}

	// 4. Для курса сверяем план с пересчитанным
	var plan domain.TreatmentPlan
	if commit.Kind == domain.BookingKindTreatment {
		plan, err = validatePlan(commit, today)
		if err != nil {
			uc.logger.Warn("CommitBooking: %v", err)
			return nil, err
		}

		expected := service.PricePerSession().Mul(decimal.NewFromInt(int64(plan.SessionCount)))
		if !commit.Treatment.TotalCost.Equal(expected) {
			uc.logger.Warn("CommitBooking: total cost %s, expected %s", commit.Treatment.TotalCost, expected)
			return nil, fmt.Errorf("%w: total cost expected %s", ErrInvalidPlan, expected)
		}
	}

	// 5. Проверяем врача
	if err := uc.checkPractitioner(ctx, commit.PractitionerID); err != nil {
		return nil, err
	}

	var ref *domain.BookingReference

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Правило расписания на день недели
		rule, err := uc.scheduleRepo.GetByPractitionerAndWeekday(txCtx, commit.PractitionerID, commit.Date.Weekday())
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
				uc.logger.Warn("CommitBooking: practitioner=%d does not work on %s",
					commit.PractitionerID, domain.WeekdayName(commit.Date.Weekday()))
				return ErrNotWorkingDay
			}
			uc.logger.Error("CommitBooking: failed to get schedule rule: %v", err)
			return fmt.Errorf("%w: failed to get schedule rule: %v", ErrInternal, err)
		}

		// 6.2. Слот должен входить в сетку
		grid, err := slotgrid.Generate(rule)
		if err != nil {
			uc.logger.Error("CommitBooking: failed to generate slots for rule id=%d: %v", rule.ID, err)
			return fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if !slotgrid.Contains(grid, commit.Time) {
			uc.logger.Warn("CommitBooking: time %s is not in the grid of rule id=%d", commit.Time, rule.ID)
			return fmt.Errorf("%w: %s", ErrInvalidTimeSlot, commit.Time)
		}

		// 6.3. Минимальное время до записи
		if commit.Date.Equal(today) && slotgrid.TooLate(commit.Time, now, uc.minNoticeMinutes) {
			uc.logger.Warn("CommitBooking: slot %s is too late to book", commit.Time)
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, uc.minNoticeMinutes)
		}

		// 6.4. Активные записи на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByPractitionerWithFilter(txCtx, domain.PractitionerBookingsFilter{
			PractitionerID: commit.PractitionerID,
			StartDate:      &commit.Date,
			EndDate:        &commit.Date,
		})
		if err != nil {
			uc.logger.Error("CommitBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if slotgrid.IsOccupied(commit.Time, rule.SlotDurationMinutes, bookings) {
			uc.logger.Warn("CommitBooking: slot %s %s of practitioner=%d is occupied",
				commit.Date, commit.Time, commit.PractitionerID)
			return slotTaken(commit)
		}

		// 6.5. Пациент
		patientID, err := uc.resolvePatient(txCtx, commit.Patient)
		if err != nil {
			return err
		}

		booking := &domain.Booking{
			PatientID:       patientID,
			PractitionerID:  commit.PractitionerID,
			ServiceID:       commit.ServiceID,
			BookingDate:     commit.Date,
			StartTime:       commit.Time,
			DurationMinutes: rule.SlotDurationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация данных услуги
			ServiceName:  service.Service().Name,
			ServicePrice: service.PricePerSession(),
		}

		// 6.6. Для курса сначала сохраняем план, запись становится первой сессией
		if commit.Kind == domain.BookingKindTreatment {
			record, err := uc.treatmentRepo.Create(txCtx, &domain.TreatmentPlanRecord{
				PatientID:       patientID,
				PractitionerID:  commit.PractitionerID,
				ServiceID:       commit.ServiceID,
				StartDate:       plan.StartDate,
				EndDate:         plan.EndDate,
				TotalSessions:   plan.SessionCount,
				SessionDates:    plan.SessionDates,
				PricePerSession: service.PricePerSession(),
				TotalCost:       commit.Treatment.TotalCost,
			})
			if err != nil {
				uc.logger.Error("CommitBooking: failed to create treatment plan: %v", err)
				return fmt.Errorf("%w: failed to create treatment plan: %v", ErrInternal, err)
			}

			booking.TreatmentPlanID = ptr.Ptr(record.ID)
			booking.SessionNumber = ptr.Ptr(1)
			ref = &domain.BookingReference{ID: record.ID, Kind: domain.BookingKindTreatment}
		}

		// 6.7. Сохраняем запись
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CommitBooking: slot taken concurrently: %v", err)
				return slotTaken(commit)
			}
			uc.logger.Error("CommitBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if ref == nil {
			ref = &domain.BookingReference{ID: created.ID, Kind: domain.BookingKindAppointment}
		}
		return nil
	})

	if err != nil {
		// Конфликт сериализации при фиксации транзакции
		if pgerr.IsSerializationFailure(err) {
			uc.logger.Warn("CommitBooking: serialization failure: %v", err)
			return nil, slotTaken(commit)
		}
		return nil, err
	}

	uc.logger.Info("CommitBooking: successfully committed %s id=%d", ref.Kind, ref.ID)

	return ref, nil
}

// getService получает услугу из каталога и классифицирует её
func (uc *UseCase) getService(ctx context.Context, serviceID int64) (domain.ClassifiedService, error) {
	service, err := uc.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CommitBooking: service id=%d not found", serviceID)
			return domain.ClassifiedService{}, ErrServiceNotFound
		}
		uc.logger.Error("CommitBooking: failed to get service id=%d: %v", serviceID, err)
		return domain.ClassifiedService{}, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CommitBooking: service id=%d is inactive", serviceID)
		return domain.ClassifiedService{}, ErrServiceNotFound
	}

	classified, err := classifier.Classify(service)
	if err != nil {
		uc.logger.Error("CommitBooking: failed to classify service id=%d: %v", serviceID, err)
		return domain.ClassifiedService{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return classified, nil
}

// checkPractitioner проверяет, что врач существует и активен
func (uc *UseCase) checkPractitioner(ctx context.Context, practitionerID int64) error {
	practitioner, err := uc.catalogRepo.GetPractitioner(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrPractitionerNotFound) {
			uc.logger.Warn("CommitBooking: practitioner id=%d not found", practitionerID)
			return ErrPractitionerNotFound
		}
		uc.logger.Error("CommitBooking: failed to get practitioner id=%d: %v", practitionerID, err)
		return fmt.Errorf("%w: failed to get practitioner: %v", ErrInternal, err)
	}

	if !practitioner.IsActive {
		uc.logger.Warn("CommitBooking: practitioner id=%d is inactive", practitionerID)
		return ErrPractitionerNotFound
	}

	return nil
}

// resolvePatient возвращает ID существующего пациента или создает нового
func (uc *UseCase) resolvePatient(ctx context.Context, selection domain.PatientSelection) (int64, error) {
	if selection.ExistingID != nil {
		patient, err := uc.patientRepo.GetByID(ctx, *selection.ExistingID)
		if err != nil {
			if errors.Is(err, patientRepo.ErrPatientNotFound) {
				uc.logger.Warn("CommitBooking: patient id=%d not found", *selection.ExistingID)
				return 0, ErrPatientNotFound
			}
			uc.logger.Error("CommitBooking: failed to get patient id=%d: %v", *selection.ExistingID, err)
			return 0, fmt.Errorf("%w: failed to get patient: %v", ErrInternal, err)
		}
		return patient.ID, nil
	}

	p := selection.New
	patient := &domain.Patient{
		FirstName:       p.FirstName,
		PaternalSurname: p.PaternalSurname,
		MaternalSurname: p.MaternalSurname,
		Gender:          p.Gender,
		BirthDate:       p.BirthDate,
	}
	if p.Phone != "" {
		patient.Phone = ptr.Ptr(p.Phone)
	}
	if p.Email != "" {
		patient.Email = ptr.Ptr(p.Email)
	}

	created, err := uc.patientRepo.Create(ctx, patient)
	if err != nil {
		uc.logger.Error("CommitBooking: failed to create patient: %v", err)
		return 0, fmt.Errorf("%w: failed to create patient: %v", ErrInternal, err)
	}

	uc.logger.Info("CommitBooking: created patient id=%d", created.ID)
	return created.ID, nil
}

// slotTaken строит ошибку занятого слота, распознаваемую и как domain.ErrSlotTaken
func slotTaken(commit *domain.BookingCommit) error {
	return fmt.Errorf("%w: %w: practitioner=%d date=%s time=%s",
		ErrSlotNotAvailable, domain.ErrSlotTaken, commit.PractitionerID, commit.Date, commit.Time)
}
