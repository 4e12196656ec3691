package commit_booking

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type CommitBookingUseCase interface {
	Execute(ctx context.Context, commit *domain.BookingCommit) (*domain.BookingReference, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
