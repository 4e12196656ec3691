package draft

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Snapshot копия состояния черновика для отображения
type Snapshot struct {
	Step              Step
	PatientMode       PatientMode
	ExistingPatientID *int64
	NewPatient        *domain.NewPatient
	Service           domain.ClassifiedService
	PractitionerID    *int64
	WorkDays          *domain.WeekdaySet
	Date              types.Date
	Time              types.TimeString
	Slots             domain.SlotSets
	SlotsLoaded       bool
	SlotsStale        bool
	SessionCount      int
	Plan              domain.TreatmentPlan
	FieldErrors       map[string]string
	Submitted         bool
	Reference         *domain.BookingReference
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Snapshot возвращает согласованную копию состояния
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Snapshot{
		Step:         d.step,
		PatientMode:  d.patientMode,
		Service:      d.service,
		Date:         d.date,
		Time:         d.time,
		Slots:        d.slots.Clone(),
		SlotsLoaded:  d.slotsLoaded,
		SlotsStale:   d.slotsStale,
		SessionCount: d.sessionCount,
		Plan:         d.plan.Clone(),
		FieldErrors:  make(map[string]string, len(d.fieldErrors)),
		Submitted:    d.closed,
		CreatedAt:    d.createdAt,
		UpdatedAt:    d.updatedAt,
	}

	switch d.patientMode {
	case PatientModeExisting:
		id := d.existingPatientID
		s.ExistingPatientID = &id
	case PatientModeNew:
		p := d.newPatient
		s.NewPatient = &p
	}

	if d.practitionerID != 0 {
		id := d.practitionerID
		s.PractitionerID = &id
		if days, ok := d.workDays[d.practitionerID]; ok {
			s.WorkDays = &days
		}
	}

	for k, v := range d.fieldErrors {
		s.FieldErrors[k] = v
	}

	if d.reference != nil {
		ref := *d.reference
		s.Reference = &ref
	}
	return s
}
