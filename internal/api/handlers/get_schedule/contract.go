package get_schedule

import (
	"context"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
)

type ScheduleService interface {
	Get(ctx context.Context, practitionerID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
