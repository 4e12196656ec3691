package get_work_days

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) ([]*domain.ScheduleRule, error)
}

// PractitionerRepository интерфейс репозитория врачей
type PractitionerRepository interface {
	GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
