package get_service

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type ServiceStore interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
