package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWeekday is returned for an unknown weekday name
var ErrInvalidWeekday = errors.New("domain: invalid weekday")

var weekdayNames = [7]string{
	time.Sunday:    "sunday",
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
}

// WeekdayName returns the lowercase English wire name of a weekday
func WeekdayName(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return ""
	}
	return weekdayNames[d]
}

// ParseWeekday parses a lowercase (case-insensitive) English weekday name
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range weekdayNames {
		if n == name {
			return time.Weekday(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
}

// WeekdaySet is a set of weekdays a practitioner works on
type WeekdaySet uint8

// NewWeekdaySet builds a set from the given weekdays
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.Add(d)
	}
	return s
}

// Add returns the set with d included
func (s WeekdaySet) Add(d time.Weekday) WeekdaySet {
	if d < time.Sunday || d > time.Saturday {
		return s
	}
	return s | 1<<uint(d)
}

// Has reports whether d is in the set
func (s WeekdaySet) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s&(1<<uint(d)) != 0
}

// IsEmpty reports whether the set has no days
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// List returns the days in the set, Monday first
func (s WeekdaySet) List() []time.Weekday {
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	days := make([]time.Weekday, 0, 7)
	for _, d := range order {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Names returns the wire names of the days in the set, Monday first
func (s WeekdaySet) Names() []string {
	days := s.List()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = WeekdayName(d)
	}
	return names
}

// ParseWeekdaySet parses a list of weekday names
func ParseWeekdaySet(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(d)
	}
	return s, nil
}

// MarshalJSON encodes the set as a list of weekday names
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON decodes a list of weekday names
func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWeekday, err)
	}
	parsed, err := ParseWeekdaySet(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
