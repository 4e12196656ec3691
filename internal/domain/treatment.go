package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// TreatmentPlan is the derived monthly schedule of a treatment.
// SessionDates[k] is StartDate plus k months, EndDate is the last session.
type TreatmentPlan struct {
	StartDate    types.Date
	SessionCount int
	SessionDates []types.Date
	EndDate      types.Date
}

// IsZero returns true when no plan has been derived
func (p TreatmentPlan) IsZero() bool {
	return p.SessionCount == 0
}

// Clone returns a copy that does not share the session slice
func (p TreatmentPlan) Clone() TreatmentPlan {
	p.SessionDates = append([]types.Date(nil), p.SessionDates...)
	return p
}

// TreatmentPlanRecord is a treatment plan stored by the clinic
type TreatmentPlanRecord struct {
	ID              int64
	PatientID       int64
	PractitionerID  int64
	ServiceID       int64
	StartDate       types.Date
	EndDate         types.Date
	TotalSessions   int
	SessionDates    []types.Date
	PricePerSession decimal.Decimal
	TotalCost       decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
