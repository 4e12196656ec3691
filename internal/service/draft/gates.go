package draft

import (
	"fmt"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
)

// checkGate проверяет условие завершения шага. Вызывается под мьютексом
func (d *Draft) checkGate(step Step) error {
	switch step {
	case StepPatientSelection:
		return d.patientGate()
	case StepServiceSelection:
		return d.serviceGate()
	case StepScheduling:
		return d.schedulingGate()
	case StepConfirmation:
		return d.checkAllGates()
	default:
		return fmt.Errorf("%w: unknown step %d", ErrInvalidTransition, int(step))
	}
}

// checkAllGates повторно проверяет все шаги до подтверждения
func (d *Draft) checkAllGates() error {
	for _, step := range []Step{StepPatientSelection, StepServiceSelection, StepScheduling} {
		if err := d.checkGate(step); err != nil {
			return err
		}
	}
	return nil
}

func (d *Draft) patientGate() error {
	switch d.patientMode {
	case PatientModeExisting:
		if d.existingPatientID > 0 {
			return nil
		}
		return newValidationError(StepPatientSelection, "patientId", "is required")
	case PatientModeNew:
		missing := d.newPatient.MissingFields()
		if len(missing) == 0 {
			return nil
		}
		fields := make(map[string]string, len(missing))
		for _, f := range missing {
			fields[f] = "is required"
		}
		return &ValidationError{Step: StepPatientSelection, Fields: fields}
	default:
		return newValidationError(StepPatientSelection, "patient", "select an existing patient or enter a new one")
	}
}

func (d *Draft) serviceGate() error {
	if d.service.IsZero() {
		return newValidationError(StepServiceSelection, "serviceId", "is required")
	}
	return nil
}

func (d *Draft) schedulingGate() error {
	fields := make(map[string]string)

	if d.practitionerID == 0 {
		fields["practitionerId"] = "is required"
	}

	switch {
	case d.date.IsZero():
		fields["date"] = "is required"
	case d.date.Before(d.today()):
		fields["date"] = "must not be in the past"
	default:
		days, cached := d.workDays[d.practitionerID]
		if !cached || !days.Has(d.date.Weekday()) {
			fields["date"] = fmt.Sprintf("practitioner does not work on %s", domain.WeekdayName(d.date.Weekday()))
		}
	}

	switch {
	case d.time.IsZero():
		fields["time"] = "is required"
	case !d.slotsLoaded || d.slotsStale:
		fields["time"] = "availability is not up to date, refresh slots"
	case !d.slots.IsAvailable(d.time):
		fields["time"] = "slot is not available"
	}

	if d.service.IsTreatment() {
		switch {
		case d.plan.IsZero():
			fields["plan"] = "treatment schedule is not derived"
		case !d.plan.StartDate.Equal(d.date) || d.plan.SessionCount != d.sessionCount:
			fields["plan"] = "treatment schedule does not match the selection"
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Step: StepScheduling, Fields: fields}
	}
	return nil
}
