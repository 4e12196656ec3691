package domain

import (
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// SlotState describes the overall availability of a date
type SlotState string

const (
	// SlotStateNoSchedule no slot grid is defined for the date
	SlotStateNoSchedule SlotState = "no_schedule"
	// SlotStateFullyBooked every slot of the grid is occupied
	SlotStateFullyBooked SlotState = "fully_booked"
	// SlotStateOpen at least one slot is available
	SlotStateOpen SlotState = "open"
)

// SlotSets is the partition of a practitioner's slot grid on a date.
// Both lists are sorted ascending and disjoint.
type SlotSets struct {
	Available []types.TimeString
	Occupied  []types.TimeString
}

// State returns the availability state of the date
func (s SlotSets) State() SlotState {
	switch {
	case len(s.Available) > 0:
		return SlotStateOpen
	case len(s.Occupied) > 0:
		return SlotStateFullyBooked
	default:
		return SlotStateNoSchedule
	}
}

// IsAvailable reports whether label is in the available set (exact string match)
func (s SlotSets) IsAvailable(label types.TimeString) bool {
	for _, a := range s.Available {
		if a == label {
			return true
		}
	}
	return false
}

// IsOccupied reports whether label is in the occupied set
func (s SlotSets) IsOccupied(label types.TimeString) bool {
	for _, o := range s.Occupied {
		if o == label {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the sets
func (s SlotSets) Clone() SlotSets {
	return SlotSets{
		Available: append([]types.TimeString(nil), s.Available...),
		Occupied:  append([]types.TimeString(nil), s.Occupied...),
	}
}
