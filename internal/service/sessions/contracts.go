package sessions

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
)

// DraftFactory создает новый черновик записи
type DraftFactory func() *draft.Draft

// Metrics интерфейс для учета активных черновиков
type Metrics interface {
	SetActiveDrafts(n int)
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
