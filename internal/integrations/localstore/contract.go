package localstore

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
)

// WorkDaysUseCase интерфейс use case рабочих дней
type WorkDaysUseCase interface {
	Execute(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error)
}

// AvailabilityUseCase интерфейс use case доступности
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// CommitUseCase интерфейс use case фиксации записи
type CommitUseCase interface {
	Execute(ctx context.Context, commit *domain.BookingCommit) (*domain.BookingReference, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
}
