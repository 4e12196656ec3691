package slotgrid

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ErrInvalidRule возвращается для правила расписания, из которого нельзя построить сетку
var ErrInvalidRule = errors.New("slotgrid: invalid schedule rule")

// Generate строит все слоты правила: от начала интервала с шагом длительности слота,
// последний слот заканчивается не позже конца интервала
func Generate(rule *domain.ScheduleRule) ([]types.TimeString, error) {
	if rule == nil {
		return []types.TimeString{}, nil
	}
	if rule.SlotDurationMinutes < domain.MinSlotDurationMinutes || rule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: slot duration %d", ErrInvalidRule, rule.SlotDurationMinutes)
	}

	start, err := rule.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidRule, err)
	}
	end, err := rule.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidRule, err)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: %s-%s is empty", ErrInvalidRule, rule.StartTime, rule.EndTime)
	}

	slots := make([]types.TimeString, 0, (end-start)/rule.SlotDurationMinutes)
	for m := start; m+rule.SlotDurationMinutes <= end; m += rule.SlotDurationMinutes {
		label, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, label)
	}

	return slots, nil
}

// Overlaps проверяет реальное пересечение слота с активной записью.
// Граничащие интервалы (конец одного равен началу другого) не пересекаются.
func Overlaps(slotStart types.TimeString, slotDuration int, booking *domain.Booking) bool {
	if !booking.IsActive() {
		return false
	}

	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		return false
	}
	bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
	if err != nil {
		return false
	}

	return booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart)
}

// IsOccupied проверяет, пересекается ли слот хотя бы с одной активной записью
func IsOccupied(slotStart types.TimeString, slotDuration int, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if Overlaps(slotStart, slotDuration, b) {
			return true
		}
	}
	return false
}

// Partition делит сетку слотов на свободные и занятые.
// Для сегодняшней даты слоты раньше now + minNoticeMinutes в свободные не попадают.
// Для прошедшей даты оба множества пусты.
func Partition(
	grid []types.TimeString,
	slotDuration int,
	bookings []*domain.Booking,
	date types.Date,
	now time.Time,
	minNoticeMinutes int,
) domain.SlotSets {
	sets := domain.SlotSets{
		Available: make([]types.TimeString, 0, len(grid)),
		Occupied:  make([]types.TimeString, 0),
	}

	today := types.DateOf(now)
	if date.Before(today) {
		return sets
	}

	for _, slot := range grid {
		if IsOccupied(slot, slotDuration, bookings) {
			sets.Occupied = append(sets.Occupied, slot)
			continue
		}
		if date.Equal(today) && TooLate(slot, now, minNoticeMinutes) {
			continue
		}
		sets.Available = append(sets.Available, slot)
	}

	return sets
}

// TooLate проверяет, что слот сегодняшнего дня начинается раньше now + minNoticeMinutes
func TooLate(slot types.TimeString, now time.Time, minNoticeMinutes int) bool {
	slotMinutes, err := slot.Minutes()
	if err != nil {
		return true
	}
	earliest := now.Hour()*60 + now.Minute() + minNoticeMinutes
	return slotMinutes < earliest
}

// Contains проверяет, что метка входит в сетку
func Contains(grid []types.TimeString, label types.TimeString) bool {
	for _, slot := range grid {
		if slot == label {
			return true
		}
	}
	return false
}
