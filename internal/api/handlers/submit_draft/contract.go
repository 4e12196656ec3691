package submit_draft

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
)

// DraftRegistry реестр черновиков записи
type DraftRegistry interface {
	Get(id string) (*draft.Draft, error)
}

// SubmitUseCase отправка черновика в хранилище
type SubmitUseCase interface {
	Execute(ctx context.Context, d *draft.Draft) (*domain.BookingReference, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
