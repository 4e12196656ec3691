package get_availability

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/api/storeapi"
	getAvailability "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(practitionerID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		PractitionerID: practitionerID,
		Date:           date,
	}, nil
}

// FromUseCaseResponse конвертирует результат use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailability.Response) *storeapi.AvailabilityResponse {
	return &storeapi.AvailabilityResponse{
		PractitionerID:      resp.PractitionerID,
		Date:                resp.Date,
		SlotDurationMinutes: resp.SlotDurationMinutes,
		Available:           resp.Slots.Available,
		Occupied:            resp.Slots.Occupied,
	}
}
