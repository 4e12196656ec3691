package wizard

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// ServiceLookup источник услуг каталога для события select_service
type ServiceLookup interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
