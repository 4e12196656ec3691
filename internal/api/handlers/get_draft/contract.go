package get_draft

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
)

// DraftRegistry реестр черновиков записи
type DraftRegistry interface {
	Get(id string) (*draft.Draft, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
