package schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetByPractitioner(ctx context.Context, practitionerID int64) ([]*domain.ScheduleRule, error)
	ReplaceForPractitioner(ctx context.Context, practitionerID int64, rules []*domain.ScheduleRule) ([]*domain.ScheduleRule, error)
}

// PractitionerRepository интерфейс репозитория врачей
type PractitionerRepository interface {
	GetPractitioner(ctx context.Context, id int64) (*domain.Practitioner, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// WorkDaysInvalidator сбрасывает закэшированные рабочие дни врача
type WorkDaysInvalidator interface {
	Invalidate(ctx context.Context, practitionerID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
