package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidCanceller возвращается при неизвестном инициаторе отмены
	ErrInvalidCanceller = errors.New("invalid canceller")
)

const (
	CancelledByPatient = "patient"
	CancelledByClinic  = "clinic"
)

// Request модели

// CancelBookingRequest запрос на отмену записи
type CancelBookingRequest struct {
	CancelledBy        string `json:"cancelledBy"` // "patient" | "clinic"
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64  `json:"id"`
	Kind            string `json:"kind"`
	PatientID       int64  `json:"patientId"`
	PractitionerID  int64  `json:"practitionerId"`
	ServiceID       int64  `json:"serviceId"`
	TreatmentPlanID *int64 `json:"treatmentPlanId,omitempty"`
	SessionNumber   *int   `json:"sessionNumber,omitempty"`
	BookingDate     string `json:"bookingDate"` // "2025-10-15"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	ServiceName  string          `json:"serviceName"`
	ServicePrice decimal.Decimal `json:"servicePrice"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Kind:               string(b.Kind()),
		PatientID:          b.PatientID,
		PractitionerID:     b.PractitionerID,
		ServiceID:          b.ServiceID,
		TreatmentPlanID:    b.TreatmentPlanID,
		SessionNumber:      b.SessionNumber,
		BookingDate:        b.BookingDate.String(),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByPatient,
		domain.StatusCancelledByClinic,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// ToCancelStatus определяет статус отмены по инициатору
func ToCancelStatus(cancelledBy string) (domain.BookingStatus, error) {
	switch cancelledBy {
	case CancelledByPatient:
		return domain.StatusCancelledByPatient, nil
	case CancelledByClinic:
		return domain.StatusCancelledByClinic, nil
	default:
		return "", ErrInvalidCanceller
	}
}
