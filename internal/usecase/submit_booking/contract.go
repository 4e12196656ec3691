package submit_booking

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ClinicStore интерфейс хранилища клиники, принимающего запись
type ClinicStore interface {
	CommitBooking(ctx context.Context, commit domain.BookingCommit) (*domain.BookingReference, error)
}

// AvailabilityResolver интерфейс для повторной проверки слота перед записью
type AvailabilityResolver interface {
	SlotsFor(ctx context.Context, practitionerID int64, date types.Date) (domain.SlotSets, error)
}

// Metrics интерфейс для учета отправок
type Metrics interface {
	ObserveSubmission(kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
