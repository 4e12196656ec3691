package get_work_days

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

type GetWorkDaysUseCase interface {
	Execute(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
