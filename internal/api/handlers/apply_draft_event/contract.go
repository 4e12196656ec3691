package apply_draft_event

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
)

// DraftRegistry реестр черновиков записи
type DraftRegistry interface {
	Get(id string) (*draft.Draft, error)
}

// ServiceLookup каталог услуг
type ServiceLookup interface {
	GetService(ctx context.Context, serviceID int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
