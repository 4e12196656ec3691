package commit_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByPractitionerAndWeekday(ctx context.Context, practitionerID int64, weekday time.Weekday) (*domain.ScheduleRule, error)
}

// CatalogRepository интерфейс каталога услуг и врачей
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error)
}

// PatientRepository интерфейс репозитория пациентов
type PatientRepository interface {
	Create(ctx context.Context, patient *domain.Patient) (*domain.Patient, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
}

// TreatmentRepository интерфейс репозитория планов лечения
type TreatmentRepository interface {
	Create(ctx context.Context, plan *domain.TreatmentPlanRecord) (*domain.TreatmentPlanRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
