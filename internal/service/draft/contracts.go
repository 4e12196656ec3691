package draft

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// AvailabilityResolver источник рабочих дней и слотов (реализуется *availability.Resolver)
type AvailabilityResolver interface {
	WorkDays(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error)
	SlotsFor(ctx context.Context, practitionerID int64, date types.Date) (domain.SlotSets, error)
}

// Metrics интерфейс для учета отброшенных устаревших ответов
type Metrics interface {
	IncStaleSlotResponses()
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
