package commit_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/scheduler"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// validateCommit валидирует структуру коммита без обращения к хранилищу
func validateCommit(commit *domain.BookingCommit) error {
	if commit == nil {
		return fmt.Errorf("%w: commit is required", ErrInvalidInput)
	}

	if !commit.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, commit.Kind)
	}

	if commit.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if commit.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if commit.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if commit.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := commit.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if commit.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	// Ровно один режим пациента
	if commit.Patient.IsEmpty() || (commit.Patient.ExistingID != nil && commit.Patient.New != nil) {
		return fmt.Errorf("%w: exactly one of existing patient or new patient is required", ErrInvalidInput)
	}
	if commit.Patient.ExistingID != nil && *commit.Patient.ExistingID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}
	if commit.Patient.New != nil {
		if err := validateNewPatient(commit.Patient.New); err != nil {
			return err
		}
	}

	switch commit.Kind {
	case domain.BookingKindTreatment:
		if commit.Treatment == nil {
			return fmt.Errorf("%w: treatment details are required", ErrInvalidInput)
		}
	case domain.BookingKindAppointment:
		if commit.Treatment != nil {
			return fmt.Errorf("%w: appointment must not carry treatment details", ErrInvalidInput)
		}
	}

	return nil
}

// validateNewPatient проверяет обязательные поля нового пациента
func validateNewPatient(p *domain.NewPatient) error {
	if missing := p.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing patient fields: %s", ErrInvalidInput, strings.Join(missing, ", "))
	}

	if !p.Gender.IsValid() {
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidInput, p.Gender)
	}

	for _, name := range []string{p.FirstName, p.PaternalSurname, p.MaternalSurname} {
		if len(name) > domain.MaxNameLength {
			return fmt.Errorf("%w: name must not exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
		}
	}

	return nil
}

// validateKind проверяет соответствие вида записи классификации услуги
func validateKind(commit *domain.BookingCommit, service domain.ClassifiedService) error {
	if service.IsTreatment() && commit.Kind != domain.BookingKindTreatment {
		return fmt.Errorf("%w: service id=%d is a treatment", ErrKindMismatch, service.ID())
	}
	if !service.IsTreatment() && commit.Kind != domain.BookingKindAppointment {
		return fmt.Errorf("%w: service id=%d is a single visit", ErrKindMismatch, service.ID())
	}

	if !commit.Price.Equal(service.PricePerSession()) {
		return fmt.Errorf("%w: got %s, catalog %s", ErrPriceMismatch, commit.Price, service.PricePerSession())
	}

	return nil
}

// validatePlan пересчитывает план лечения и сверяет его с присланным
func validatePlan(commit *domain.BookingCommit, today types.Date) (domain.TreatmentPlan, error) {
	t := commit.Treatment

	plan, err := scheduler.DeriveSchedule(commit.Date, t.TotalSessions, today)
	if err != nil {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}

	if !t.Plan.StartDate.Equal(commit.Date) {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: plan starts on %s, booking on %s",
			ErrInvalidPlan, t.Plan.StartDate, commit.Date)
	}

	if t.Plan.SessionCount != plan.SessionCount || len(t.Plan.SessionDates) != len(plan.SessionDates) {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: expected %d sessions", ErrInvalidPlan, plan.SessionCount)
	}
	for i, d := range plan.SessionDates {
		if !t.Plan.SessionDates[i].Equal(d) {
			return domain.TreatmentPlan{}, fmt.Errorf("%w: session %d expected on %s, got %s",
				ErrInvalidPlan, i+1, d, t.Plan.SessionDates[i])
		}
	}
	if !t.Plan.EndDate.Equal(plan.EndDate) {
		return domain.TreatmentPlan{}, fmt.Errorf("%w: end date expected %s", ErrInvalidPlan, plan.EndDate)
	}

	return plan, nil
}
