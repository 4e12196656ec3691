package slotgrid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

func labels(s ...string) []types.TimeString {
	out := make([]types.TimeString, len(s))
	for i, v := range s {
		out[i] = types.TimeString(v)
	}
	return out
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		rule     *domain.ScheduleRule
		expected []types.TimeString
		wantErr  bool
	}{
		{
			name:     "regular morning",
			rule:     &domain.ScheduleRule{StartTime: "09:00", EndTime: "11:00", SlotDurationMinutes: 30},
			expected: labels("09:00", "09:30", "10:00", "10:30"),
		},
		{
			name:     "tail shorter than a slot is dropped",
			rule:     &domain.ScheduleRule{StartTime: "09:00", EndTime: "10:50", SlotDurationMinutes: 45},
			expected: labels("09:00", "09:45"),
		},
		{
			name:     "until end of day",
			rule:     &domain.ScheduleRule{StartTime: "22:00", EndTime: types.EndOfDay, SlotDurationMinutes: 60},
			expected: labels("22:00", "23:00"),
		},
		{
			name:     "no rule",
			rule:     nil,
			expected: labels(),
		},
		{
			name:    "inverted interval",
			rule:    &domain.ScheduleRule{StartTime: "12:00", EndTime: "09:00", SlotDurationMinutes: 30},
			wantErr: true,
		},
		{
			name:    "zero duration",
			rule:    &domain.ScheduleRule{StartTime: "09:00", EndTime: "12:00", SlotDurationMinutes: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.rule)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRule)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	booking := func(start string, duration int, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{StartTime: types.TimeString(start), DurationMinutes: duration, Status: status}
	}

	tests := []struct {
		name     string
		booking  *domain.Booking
		expected bool
	}{
		{"partial overlap", booking("11:20", 20, domain.StatusConfirmed), true},
		{"ends at slot start", booking("11:00", 30, domain.StatusConfirmed), false},
		{"starts at slot end", booking("12:00", 30, domain.StatusPending), false},
		{"covers slot", booking("11:00", 90, domain.StatusCompleted), true},
		{"cancelled", booking("11:30", 30, domain.StatusCancelledByPatient), false},
		{"no show", booking("11:30", 30, domain.StatusNoShow), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps("11:30", 30, tt.booking))
		})
	}
}

func TestPartition(t *testing.T) {
	grid := labels("09:00", "09:30", "10:00", "10:30")
	bookings := []*domain.Booking{
		{StartTime: "09:30", DurationMinutes: 45, Status: domain.StatusConfirmed},
		{StartTime: "09:00", DurationMinutes: 30, Status: domain.StatusCancelledByClinic},
	}
	date := types.NewDate(2025, time.June, 16)

	t.Run("future date", func(t *testing.T) {
		now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
		sets := Partition(grid, 30, bookings, date, now, 60)
		assert.Equal(t, labels("09:00", "10:30"), sets.Available)
		assert.Equal(t, labels("09:30", "10:00"), sets.Occupied)
		assert.Equal(t, domain.SlotStateOpen, sets.State())
	})

	t.Run("today respects minimum notice", func(t *testing.T) {
		now := time.Date(2025, time.June, 16, 9, 10, 0, 0, time.UTC)
		sets := Partition(grid, 30, bookings, date, now, 60)
		assert.Equal(t, labels("10:30"), sets.Available)
		assert.Equal(t, labels("09:30", "10:00"), sets.Occupied)
	})

	t.Run("past date", func(t *testing.T) {
		now := time.Date(2025, time.June, 17, 8, 0, 0, 0, time.UTC)
		sets := Partition(grid, 30, bookings, date, now, 60)
		assert.Empty(t, sets.Available)
		assert.Empty(t, sets.Occupied)
	})

	t.Run("fully booked", func(t *testing.T) {
		now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
		all := []*domain.Booking{{StartTime: "09:00", DurationMinutes: 120, Status: domain.StatusConfirmed}}
		sets := Partition(grid, 30, all, date, now, 0)
		assert.Equal(t, domain.SlotStateFullyBooked, sets.State())
	})
}

func TestTooLate(t *testing.T) {
	now := time.Date(2025, time.June, 16, 23, 30, 0, 0, time.UTC)
	assert.True(t, TooLate("23:00", now, 0))
	assert.False(t, TooLate("23:30", now, 0))
	assert.True(t, TooLate("23:45", now, 60))
}
