package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания врачей
type ScheduleRepository interface {
	GetByPractitionerAndWeekday(ctx context.Context, practitionerID int64, weekday time.Weekday) (*domain.ScheduleRule, error)
}

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error)
}

// PractitionerRepository интерфейс справочника врачей
type PractitionerRepository interface {
	GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error)
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
