package availability

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// StoreClient источник рабочих дней и занятости практикующих врачей
type StoreClient interface {
	GetWorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error)
	GetAvailability(ctx context.Context, practitionerID int64, date types.Date) (*domain.SlotSets, error)
}

// Metrics интерфейс для учета запросов доступности
type Metrics interface {
	ObserveAvailabilityQuery(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
