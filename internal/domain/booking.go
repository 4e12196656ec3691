package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByPatient BookingStatus = "cancelled_by_patient"
	StatusCancelledByClinic  BookingStatus = "cancelled_by_clinic"
	StatusNoShow             BookingStatus = "no_show"
)

// BookingKind distinguishes a single appointment from a treatment plan
type BookingKind string

const (
	BookingKindAppointment BookingKind = "appointment"
	BookingKindTreatment   BookingKind = "treatment"
)

// IsValid returns true for a known kind
func (k BookingKind) IsValid() bool {
	return k == BookingKindAppointment || k == BookingKindTreatment
}

// Booking represents one occupied slot of a practitioner
type Booking struct {
	ID              int64
	PatientID       int64
	PractitionerID  int64
	ServiceID       int64
	TreatmentPlanID *int64 // set for treatment sessions
	SessionNumber   *int   // 1-based session number within the plan
	BookingDate     types.Date
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice decimal.Decimal

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Kind returns the kind of the booking
func (b *Booking) Kind() BookingKind {
	if b.TreatmentPlanID != nil {
		return BookingKindTreatment
	}
	return BookingKindAppointment
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByPatient &&
		b.Status != StatusCancelledByClinic &&
		b.Status != StatusNoShow
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByPatient || b.Status == StatusCancelledByClinic
}

// TreatmentCommit is the treatment part of a booking commit
type TreatmentCommit struct {
	Plan          TreatmentPlan
	TotalSessions int
	TotalCost     decimal.Decimal
}

// BookingCommit is the immutable payload sent to the clinic store.
// Treatment is nil for appointments.
type BookingCommit struct {
	Kind           BookingKind
	Patient        PatientSelection
	PractitionerID int64
	ServiceID      int64
	Price          decimal.Decimal // price per session
	Date           types.Date      // appointment date or first session date
	Time           types.TimeString
	Treatment      *TreatmentCommit
}

// NewAppointmentCommit builds a single-appointment commit
func NewAppointmentCommit(
	patient PatientSelection,
	practitionerID int64,
	service ClassifiedService,
	date types.Date,
	at types.TimeString,
) BookingCommit {
	return BookingCommit{
		Kind:           BookingKindAppointment,
		Patient:        patient,
		PractitionerID: practitionerID,
		ServiceID:      service.ID(),
		Price:          service.PricePerSession(),
		Date:           date,
		Time:           at,
	}
}

// NewTreatmentCommit builds a treatment-plan commit; total cost is price per session times sessions
func NewTreatmentCommit(
	patient PatientSelection,
	practitionerID int64,
	service ClassifiedService,
	plan TreatmentPlan,
	at types.TimeString,
) BookingCommit {
	price := service.PricePerSession()
	return BookingCommit{
		Kind:           BookingKindTreatment,
		Patient:        patient,
		PractitionerID: practitionerID,
		ServiceID:      service.ID(),
		Price:          price,
		Date:           plan.StartDate,
		Time:           at,
		Treatment: &TreatmentCommit{
			Plan:          plan.Clone(),
			TotalSessions: plan.SessionCount,
			TotalCost:     price.Mul(decimal.NewFromInt(int64(plan.SessionCount))),
		},
	}
}

// BookingReference identifies a committed booking and its kind
type BookingReference struct {
	ID   int64
	Kind BookingKind
}

// PractitionerBookingsFilter selects bookings of a practitioner
type PractitionerBookingsFilter struct {
	PractitionerID  int64
	StartDate       *types.Date
	EndDate         *types.Date
	Status          *BookingStatus
	IncludeInactive bool
}

// IsSingleDay returns true when the filter covers exactly one date
func (f PractitionerBookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}
