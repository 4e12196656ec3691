package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Gender of a patient
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid returns true for a known gender value
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// Patient represents a stored patient record
type Patient struct {
	ID              int64
	FirstName       string
	PaternalSurname string
	MaternalSurname string
	Gender          Gender
	BirthDate       types.Date
	Phone           *string
	Email           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FullName returns the display name of the patient
func (p *Patient) FullName() string {
	return strings.TrimSpace(strings.Join([]string{p.FirstName, p.PaternalSurname, p.MaternalSurname}, " "))
}

// NewPatient holds the fields of a patient created during booking
type NewPatient struct {
	FirstName       string
	PaternalSurname string
	MaternalSurname string
	Gender          Gender
	BirthDate       types.Date
	Phone           string
	Email           string
}

// MissingFields returns the names of required fields that are empty
func (p NewPatient) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(p.PaternalSurname) == "" {
		missing = append(missing, "paternalSurname")
	}
	if strings.TrimSpace(p.MaternalSurname) == "" {
		missing = append(missing, "maternalSurname")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if p.BirthDate.IsZero() {
		missing = append(missing, "birthDate")
	}
	return missing
}

// PatientSelection is either an existing patient or a new-patient payload
// Exactly one of ExistingID and New is set in a complete selection
type PatientSelection struct {
	ExistingID *int64
	New        *NewPatient
}

// IsExisting returns true when an existing patient is selected
func (s PatientSelection) IsExisting() bool {
	return s.ExistingID != nil
}

// IsEmpty returns true when nothing is selected
func (s PatientSelection) IsEmpty() bool {
	return s.ExistingID == nil && s.New == nil
}
