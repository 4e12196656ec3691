package scheduler

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ErrInvalidSchedule возвращается при некорректных параметрах курса
var ErrInvalidSchedule = errors.New("scheduler: invalid schedule")

// DeriveSchedule рассчитывает даты сессий курса.
// Сессия k приходится на start + k месяцев (считается от start, а не от предыдущей сессии),
// день месяца прижимается к последнему дню, если в месяце его нет.
// today задает текущую дату клиники: начало курса в прошлом недопустимо.
func DeriveSchedule(start types.Date, sessions int, today types.Date) (domain.TreatmentPlan, error) {
	if sessions < domain.MinSessionCount {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: session count must be at least %d, got %d",
			ErrInvalidSchedule, domain.MinSessionCount, sessions)
	}
	if sessions > domain.MaxSessionCount {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: session count must not exceed %d, got %d",
			ErrInvalidSchedule, domain.MaxSessionCount, sessions)
	}
	if start.IsZero() {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: start date is required", ErrInvalidSchedule)
	}
	if start.Before(today) {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: start date %s is before %s", ErrInvalidSchedule, start, today)
	}

	dates := make([]types.Date, sessions)
	for k := range dates {
		dates[k] = start.AddMonths(k)
	}

	return domain.TreatmentPlan{
		StartDate:    start,
		SessionCount: sessions,
		SessionDates: dates,
		EndDate:      dates[sessions-1],
	}, nil
}
