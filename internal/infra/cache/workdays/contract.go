package workdays

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Store хранилище клиники, которое оборачивает кеш
type Store interface {
	GetWorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error)
	GetAvailability(ctx context.Context, practitionerID int64, date types.Date) (*domain.SlotSets, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
