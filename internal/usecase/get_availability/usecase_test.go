package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeSchedule struct {
	rules map[time.Weekday]*domain.ScheduleRule
	err   error
}

func (f *fakeSchedule) GetByPractitionerAndWeekday(_ context.Context, _ int64, weekday time.Weekday) (*domain.ScheduleRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	rule, ok := f.rules[weekday]
	if !ok {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return rule, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
	filter   domain.PractitionerBookingsFilter
}

func (f *fakeBookings) GetByPractitionerWithFilter(_ context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, f.err
}

type fakePractitioners struct {
	practitioner *domain.Practitioner
}

func (f *fakePractitioners) GetPractitioner(_ context.Context, id int64) (*domain.Practitioner, error) {
	if f.practitioner == nil || f.practitioner.ID != id {
		return nil, catalogRepo.ErrPractitionerNotFound
	}
	return f.practitioner, nil
}

func newUseCase(schedule *fakeSchedule, bookings *fakeBookings, now time.Time) *UseCase {
	practitioners := &fakePractitioners{practitioner: &domain.Practitioner{ID: 2, IsActive: true}}
	return NewUseCase(schedule, bookings, practitioners, 60, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
}

func TestExecute_Partition(t *testing.T) {
	schedule := &fakeSchedule{rules: map[time.Weekday]*domain.ScheduleRule{
		time.Monday: {ID: 1, PractitionerID: 2, Weekday: time.Monday, StartTime: "09:00", EndTime: "11:00", SlotDurationMinutes: 30},
	}}
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{StartTime: "09:30", DurationMinutes: 30, Status: domain.StatusConfirmed},
	}}
	uc := newUseCase(schedule, bookings, time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC))

	day := types.NewDate(2025, time.June, 16)
	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 2, Date: day})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.SlotDurationMinutes)
	assert.Equal(t, []types.TimeString{"09:00", "10:00", "10:30"}, resp.Slots.Available)
	assert.Equal(t, []types.TimeString{"09:30"}, resp.Slots.Occupied)
	assert.True(t, bookings.filter.IsSingleDay())
	assert.False(t, bookings.filter.IncludeInactive)
}

func TestExecute_NoRuleForWeekday(t *testing.T) {
	uc := newUseCase(&fakeSchedule{}, &fakeBookings{}, time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 2, Date: types.NewDate(2025, time.June, 17)})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotStateNoSchedule, resp.Slots.State())
	assert.NotNil(t, resp.Slots.Available)
}

func TestExecute_Errors(t *testing.T) {
	now := time.Date(2025, time.June, 10, 8, 0, 0, 0, time.UTC)
	monday := types.NewDate(2025, time.June, 16)
	rules := map[time.Weekday]*domain.ScheduleRule{
		time.Monday: {StartTime: "09:00", EndTime: "11:00", SlotDurationMinutes: 30},
	}

	tests := []struct {
		name     string
		uc       *UseCase
		req      *Request
		expected error
	}{
		{
			name:     "missing practitioner",
			uc:       newUseCase(&fakeSchedule{}, &fakeBookings{}, now),
			req:      &Request{Date: monday},
			expected: ErrInvalidInput,
		},
		{
			name:     "missing date",
			uc:       newUseCase(&fakeSchedule{}, &fakeBookings{}, now),
			req:      &Request{PractitionerID: 2},
			expected: ErrInvalidInput,
		},
		{
			name:     "unknown practitioner",
			uc:       newUseCase(&fakeSchedule{}, &fakeBookings{}, now),
			req:      &Request{PractitionerID: 7, Date: monday},
			expected: ErrPractitionerNotFound,
		},
		{
			name:     "schedule failure",
			uc:       newUseCase(&fakeSchedule{err: errors.New("db down")}, &fakeBookings{}, now),
			req:      &Request{PractitionerID: 2, Date: monday},
			expected: ErrInternal,
		},
		{
			name:     "bookings failure",
			uc:       newUseCase(&fakeSchedule{rules: rules}, &fakeBookings{err: errors.New("db down")}, now),
			req:      &Request{PractitionerID: 2, Date: monday},
			expected: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestExecute_InactivePractitioner(t *testing.T) {
	practitioners := &fakePractitioners{practitioner: &domain.Practitioner{ID: 2, IsActive: false}}
	uc := NewUseCase(&fakeSchedule{}, &fakeBookings{}, practitioners, 60, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{PractitionerID: 2, Date: types.NewDate(2025, time.June, 16)})
	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}
