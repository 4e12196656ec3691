package localstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/commit_booking"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_work_days"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

type fakeWorkDays struct {
	days domain.WeekdaySet
	err  error
}

func (f fakeWorkDays) Execute(context.Context, int64) (domain.WeekdaySet, error) {
	return f.days, f.err
}

type fakeAvailability struct {
	resp *get_availability.Response
	err  error
	req  *get_availability.Request
}

func (f *fakeAvailability) Execute(_ context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	f.req = req
	return f.resp, f.err
}

type fakeCommit struct {
	ref    *domain.BookingReference
	err    error
	commit *domain.BookingCommit
}

func (f *fakeCommit) Execute(_ context.Context, commit *domain.BookingCommit) (*domain.BookingReference, error) {
	f.commit = commit
	return f.ref, f.err
}

type fakeServices map[int64]*domain.Service

func (f fakeServices) GetService(_ context.Context, id int64) (*domain.Service, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func TestStore_GetWorkDays(t *testing.T) {
	s := NewStore(fakeWorkDays{days: domain.NewWeekdaySet(time.Monday)}, nil, nil, nil)
	days, err := s.GetWorkDays(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, days.Has(time.Monday))

	s = NewStore(fakeWorkDays{err: get_work_days.ErrPractitionerNotFound}, nil, nil, nil)
	_, err = s.GetWorkDays(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_GetAvailability(t *testing.T) {
	day := types.NewDate(2025, time.June, 16)
	uc := &fakeAvailability{resp: &get_availability.Response{
		Slots: domain.SlotSets{Available: []types.TimeString{"09:00"}, Occupied: []types.TimeString{"09:30"}},
	}}

	slots, err := NewStore(nil, uc, nil, nil).GetAvailability(context.Background(), 5, day)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00"}, slots.Available)
	assert.Equal(t, []types.TimeString{"09:30"}, slots.Occupied)
	assert.Equal(t, &get_availability.Request{PractitionerID: 5, Date: day}, uc.req)

	uc.err = fmt.Errorf("%w: gone", get_availability.ErrPractitionerNotFound)
	_, err = NewStore(nil, uc, nil, nil).GetAvailability(context.Background(), 5, day)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_GetService(t *testing.T) {
	s := NewStore(nil, nil, nil, fakeServices{
		3: {ID: 3, Name: "Limpieza", IsActive: true},
		4: {ID: 4, Name: "Retirado", IsActive: false},
	})

	svc, err := s.GetService(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Limpieza", svc.Name)

	_, err = s.GetService(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.GetService(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStore_CommitBookingKeepsConflict(t *testing.T) {
	uc := &fakeCommit{err: fmt.Errorf("%w: %w: taken", commit_booking.ErrSlotNotAvailable, domain.ErrSlotTaken)}

	_, err := NewStore(nil, nil, uc, nil).CommitBooking(context.Background(), domain.BookingCommit{PractitionerID: 5})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	require.NotNil(t, uc.commit)
	assert.Equal(t, int64(5), uc.commit.PractitionerID)
}
