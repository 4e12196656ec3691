package cancel_booking

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancelledBy        string  `json:"cancelledBy"` // "patient" | "clinic"
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		CancelledBy:        r.CancelledBy,
		CancellationReason: reason,
	}
}
