package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Practitioner represents a care provider
type Practitioner struct {
	ID        int64
	FirstName string
	LastName  string
	Specialty *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleRule is a recurring working interval of a practitioner on a weekday.
// The interval [StartTime, EndTime) is cut into slots of SlotDurationMinutes.
type ScheduleRule struct {
	ID                  int64
	PractitionerID      int64
	Weekday             time.Weekday
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// WorkDaysOf returns the weekdays covered by the given rules
func WorkDaysOf(rules []*ScheduleRule) WeekdaySet {
	var set WeekdaySet
	for _, r := range rules {
		set = set.Add(r.Weekday)
	}
	return set
}
