package get_availability

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Request модель запроса доступности врача на дату
type Request struct {
	PractitionerID int64      // ID врача
	Date           types.Date // Дата
}

// Response разбиение сетки слотов на свободные и занятые
type Response struct {
	PractitionerID      int64
	Date                types.Date
	SlotDurationMinutes int // 0, если на дату нет расписания
	Slots               domain.SlotSets
}
