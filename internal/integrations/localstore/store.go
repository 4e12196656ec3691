// Package localstore реализует хранилище клиники поверх собственной БД сервиса,
// без сетевого обмена. Ошибки переводятся в domain.ErrNotFound и domain.ErrSlotTaken.
package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_work_days"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Store хранилище клиники внутри процесса
type Store struct {
	workDays     WorkDaysUseCase
	availability AvailabilityUseCase
	commit       CommitUseCase
	services     ServiceRepository
}

// NewStore создает новый экземпляр хранилища
func NewStore(
	workDays WorkDaysUseCase,
	availability AvailabilityUseCase,
	commit CommitUseCase,
	services ServiceRepository,
) *Store {
	return &Store{
		workDays:     workDays,
		availability: availability,
		commit:       commit,
		services:     services,
	}
}

// GetWorkDays возвращает рабочие дни врача
func (s *Store) GetWorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	days, err := s.workDays.Execute(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, get_work_days.ErrPractitionerNotFound) {
			return 0, fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
		return 0, err
	}
	return days, nil
}

// GetAvailability возвращает свободные и занятые слоты врача на дату
func (s *Store) GetAvailability(ctx context.Context, practitionerID int64, date types.Date) (*domain.SlotSets, error) {
	resp, err := s.availability.Execute(ctx, &get_availability.Request{
		PractitionerID: practitionerID,
		Date:           date,
	})
	if err != nil {
		if errors.Is(err, get_availability.ErrPractitionerNotFound) {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotFound, err)
		}
		return nil, err
	}

	slots := resp.Slots.Clone()
	return &slots, nil
}

// GetService возвращает активную услугу каталога
func (s *Store) GetService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, fmt.Errorf("%w: service id=%d", domain.ErrNotFound, serviceID)
		}
		return nil, err
	}
	if !service.IsActive {
		return nil, fmt.Errorf("%w: service id=%d is inactive", domain.ErrNotFound, serviceID)
	}
	return service, nil
}

// CommitBooking фиксирует запись; занятый слот возвращает ошибку, совместимую с domain.ErrSlotTaken
func (s *Store) CommitBooking(ctx context.Context, commit domain.BookingCommit) (*domain.BookingReference, error) {
	return s.commit.Execute(ctx, &commit)
}
