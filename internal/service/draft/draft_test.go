package draft

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/classifier"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// 2025-06-10 - вторник
var testNow = time.Date(2025, time.June, 10, 9, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeResolver struct {
	mu            sync.Mutex
	workDays      map[int64]domain.WeekdaySet
	workDaysErr   error
	workDaysCalls int
	slots         map[string]domain.SlotSets
	slotsErr      error
	slotsCalls    []types.Date
	block         map[string]chan struct{}
	started       chan types.Date
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		workDays: map[int64]domain.WeekdaySet{
			1: domain.NewWeekdaySet(time.Monday, time.Wednesday, time.Sunday),
			2: domain.NewWeekdaySet(time.Friday),
		},
		slots:   make(map[string]domain.SlotSets),
		block:   make(map[string]chan struct{}),
		started: make(chan types.Date, 4),
	}
}

func (f *fakeResolver) WorkDays(_ context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workDaysCalls++
	if f.workDaysErr != nil {
		return 0, f.workDaysErr
	}
	return f.workDays[practitionerID], nil
}

func (f *fakeResolver) SlotsFor(_ context.Context, _ int64, date types.Date) (domain.SlotSets, error) {
	f.mu.Lock()
	f.slotsCalls = append(f.slotsCalls, date)
	gate := f.block[date.String()]
	sets, err := f.slots[date.String()], f.slotsErr
	f.mu.Unlock()

	if gate != nil {
		f.started <- date
		<-gate
	}
	if err != nil {
		return domain.SlotSets{}, err
	}
	return sets.Clone(), nil
}

func (f *fakeResolver) setSlots(date string, available ...types.TimeString) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[date] = domain.SlotSets{Available: available}
}

func (f *fakeResolver) setSlotsErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slotsErr = err
}

func (f *fakeResolver) blockOn(date string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.block[date] = ch
	return ch
}

func (f *fakeResolver) slotCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.slotsCalls)
}

type fakeMetrics struct {
	mu    sync.Mutex
	stale int
}

func (f *fakeMetrics) IncStaleSlotResponses() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stale++
}

func date(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

var (
	consultation = &domain.Service{ID: 10, Name: "Consulta", Price: decimal.NewFromInt(500)}
	orthodontics = &domain.Service{
		ID:                20,
		Name:              "Ortodoncia",
		Price:             decimal.NewFromInt(1200),
		IsTreatment:       true,
		EstimatedSessions: ptr.Ptr(4),
	}
)

func newTestDraft(r *fakeResolver, m Metrics) *Draft {
	return New(r, m, logger.NewNop(), WithTimeProvider(fixedTime{now: testNow}))
}

// draftAtScheduling проводит черновик через первые два шага
func draftAtScheduling(t *testing.T, r *fakeResolver, svc *domain.Service) *Draft {
	t.Helper()
	ctx := context.Background()
	d := newTestDraft(r, nil)
	require.NoError(t, d.Transition(ctx, SelectExistingPatient{PatientID: 7}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.NoError(t, d.Transition(ctx, SelectService{Service: svc}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.Equal(t, StepScheduling, d.Snapshot().Step)
	return d
}

func requireValidation(t *testing.T, err error, step Step, field string) {
	t.Helper()
	require.ErrorIs(t, err, ErrValidation)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, step, verr.Step)
	assert.Contains(t, verr.Fields, field)
}

func TestDraft_PatientGate(t *testing.T) {
	ctx := context.Background()
	d := newTestDraft(newFakeResolver(), nil)

	requireValidation(t, d.Transition(ctx, Next{}), StepPatientSelection, "patient")

	err := d.Transition(ctx, EnterNewPatient{Patient: domain.NewPatient{FirstName: "Lucía", PaternalSurname: "Pérez"}})
	require.NoError(t, err)
	err = d.Transition(ctx, Next{})
	requireValidation(t, err, StepPatientSelection, "maternalSurname")
	assert.Contains(t, d.Snapshot().FieldErrors, "birthDate")

	require.NoError(t, d.Transition(ctx, EnterNewPatient{Patient: domain.NewPatient{
		FirstName:       "Lucía",
		PaternalSurname: "Pérez",
		MaternalSurname: "Gómez",
		Gender:          domain.GenderFemale,
		BirthDate:       date("1992-03-14"),
	}}))
	require.NoError(t, d.Transition(ctx, Next{}))

	snap := d.Snapshot()
	assert.Equal(t, StepServiceSelection, snap.Step)
	assert.Equal(t, PatientModeNew, snap.PatientMode)
	assert.Empty(t, snap.FieldErrors)
}

func TestDraft_PatientModesAreExclusive(t *testing.T) {
	ctx := context.Background()
	d := newTestDraft(newFakeResolver(), nil)

	require.NoError(t, d.Transition(ctx, EnterNewPatient{Patient: domain.NewPatient{FirstName: "Ana"}}))
	require.NoError(t, d.Transition(ctx, SelectExistingPatient{PatientID: 3}))

	snap := d.Snapshot()
	assert.Equal(t, PatientModeExisting, snap.PatientMode)
	assert.Nil(t, snap.NewPatient)
	require.NotNil(t, snap.ExistingPatientID)
	assert.Equal(t, int64(3), *snap.ExistingPatientID)

	require.NoError(t, d.Transition(ctx, EnterNewPatient{Patient: domain.NewPatient{FirstName: "Ana"}}))
	snap = d.Snapshot()
	assert.Nil(t, snap.ExistingPatientID)
	require.NotNil(t, snap.NewPatient)
	assert.Equal(t, "Ana", snap.NewPatient.FirstName)
}

func TestDraft_PatientValidation(t *testing.T) {
	ctx := context.Background()
	d := newTestDraft(newFakeResolver(), nil)

	requireValidation(t, d.Transition(ctx, SelectExistingPatient{PatientID: 0}), StepPatientSelection, "patientId")
	requireValidation(t, d.Transition(ctx, EnterNewPatient{Patient: domain.NewPatient{Gender: "robot"}}),
		StepPatientSelection, "gender")
	requireValidation(t, d.Transition(ctx, EnterNewPatient{Patient: domain.NewPatient{BirthDate: date("2030-01-01")}}),
		StepPatientSelection, "birthDate")
}

func TestDraft_ServiceSelection(t *testing.T) {
	ctx := context.Background()
	d := newTestDraft(newFakeResolver(), nil)
	require.NoError(t, d.Transition(ctx, SelectExistingPatient{PatientID: 7}))
	require.NoError(t, d.Transition(ctx, Next{}))

	requireValidation(t, d.Transition(ctx, Next{}), StepServiceSelection, "serviceId")

	err := d.Transition(ctx, SelectService{Service: &domain.Service{ID: 0}})
	assert.ErrorIs(t, err, classifier.ErrInvalidService)

	require.NoError(t, d.Transition(ctx, SelectService{Service: consultation}))
	require.NoError(t, d.Transition(ctx, SelectService{Service: orthodontics}))

	snap := d.Snapshot()
	assert.Equal(t, int64(20), snap.Service.ID())
	assert.True(t, snap.Service.IsTreatment())
	assert.Equal(t, 4, snap.SessionCount)

	require.NoError(t, d.Transition(ctx, Next{}))
	assert.Equal(t, StepScheduling, d.Snapshot().Step)
}

func TestDraft_EditsOnlyOnOwnStep(t *testing.T) {
	ctx := context.Background()
	d := draftAtScheduling(t, newFakeResolver(), consultation)

	assert.ErrorIs(t, d.Transition(ctx, SelectService{Service: orthodontics}), ErrInvalidTransition)
	assert.ErrorIs(t, d.Transition(ctx, SelectExistingPatient{PatientID: 2}), ErrInvalidTransition)

	fresh := newTestDraft(newFakeResolver(), nil)
	assert.ErrorIs(t, fresh.Transition(ctx, SelectPractitioner{PractitionerID: 1}), ErrInvalidTransition)
	assert.ErrorIs(t, fresh.Transition(ctx, SelectDate{Date: date("2025-06-16")}), ErrInvalidTransition)
	assert.ErrorIs(t, fresh.Transition(ctx, RefreshSlots{}), ErrInvalidTransition)
}

func TestDraft_SchedulingSingleVisit(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00", "09:30", "10:00")
	d := draftAtScheduling(t, r, consultation)

	requireValidation(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}), StepScheduling, "practitionerId")

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))

	// вторник не рабочий день: слоты не запрашиваются
	requireValidation(t, d.Transition(ctx, SelectDate{Date: date("2025-06-17")}), StepScheduling, "date")
	// прошлое
	requireValidation(t, d.Transition(ctx, SelectDate{Date: date("2025-06-09")}), StepScheduling, "date")
	assert.Equal(t, 0, r.slotCallCount())

	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	assert.Equal(t, 1, r.slotCallCount())

	requireValidation(t, d.Transition(ctx, Next{}), StepScheduling, "time")
	requireValidation(t, d.Transition(ctx, SelectTime{Time: "11:00"}), StepScheduling, "time")
	requireValidation(t, d.Transition(ctx, SelectTime{Time: "9:30"}), StepScheduling, "time")

	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:30"}))
	require.NoError(t, d.Transition(ctx, Next{}))

	snap := d.Snapshot()
	assert.Equal(t, StepConfirmation, snap.Step)
	assert.Equal(t, types.TimeString("09:30"), snap.Time)
	assert.True(t, snap.Plan.IsZero())
	require.NotNil(t, snap.WorkDays)
	assert.True(t, snap.WorkDays.Has(time.Monday))
}

func TestDraft_WorkDaysCachedPerPractitioner(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	d := draftAtScheduling(t, r, consultation)

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 2}))
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))

	assert.Equal(t, 2, r.workDaysCalls)
}

func TestDraft_WorkDaysUnavailable(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.workDaysErr = availability.ErrAvailabilityUnavailable
	d := draftAtScheduling(t, r, consultation)

	err := d.Transition(ctx, SelectPractitioner{PractitionerID: 1})
	assert.ErrorIs(t, err, availability.ErrAvailabilityUnavailable)

	// практик выбран, рабочие дни подгрузятся при выборе даты
	r.workDaysErr = nil
	r.setSlots("2025-06-16", "09:00")
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	assert.Equal(t, []types.TimeString{"09:00"}, d.Snapshot().Slots.Available)
}

func TestDraft_PractitionerChangeClearsSchedule(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00")
	d := draftAtScheduling(t, r, orthodontics)

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:00"}))
	require.False(t, d.Snapshot().Plan.IsZero())

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 2}))

	snap := d.Snapshot()
	assert.True(t, snap.Date.IsZero())
	assert.True(t, snap.Time.IsZero())
	assert.Empty(t, snap.Slots.Available)
	assert.True(t, snap.Plan.IsZero())
	assert.Equal(t, 4, snap.SessionCount)
}

func TestDraft_TreatmentScenario(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-15", "10:00", "11:00")
	d := draftAtScheduling(t, r, orthodontics)

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-15")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "10:00"}))

	snap := d.Snapshot()
	assert.Equal(t, []types.Date{
		date("2025-06-15"), date("2025-07-15"), date("2025-08-15"), date("2025-09-15"),
	}, snap.Plan.SessionDates)
	assert.Equal(t, date("2025-09-15"), snap.Plan.EndDate)

	require.NoError(t, d.Transition(ctx, Next{}))
	assert.Equal(t, StepConfirmation, d.Snapshot().Step)
}

func TestDraft_OversizedTreatmentRejected(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-11", "10:00")
	d := newTestDraft(r, nil)
	require.NoError(t, d.Transition(ctx, SelectExistingPatient{PatientID: 7}))
	require.NoError(t, d.Transition(ctx, Next{}))

	longCourse := &domain.Service{
		ID:                30,
		Name:              "Ortodoncia extendida",
		Price:             decimal.NewFromInt(900),
		IsTreatment:       true,
		EstimatedSessions: ptr.Ptr(domain.MaxSessionCount + 12),
	}
	err := d.Transition(ctx, SelectService{Service: longCourse})
	require.ErrorIs(t, err, classifier.ErrInvalidService)
	assert.True(t, d.Snapshot().Service.IsZero())

	require.NoError(t, d.Transition(ctx, SelectService{Service: orthodontics}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-11")}))
	assert.Equal(t, 1, r.slotCallCount())
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "10:00"}))
}

func TestDraft_SetSessionCount(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-08-31", "10:00")
	d := draftAtScheduling(t, r, orthodontics)

	// до выбора даты план не строится
	require.NoError(t, d.Transition(ctx, SetSessionCount{Count: 2}))
	assert.True(t, d.Snapshot().Plan.IsZero())

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-08-31")}))
	assert.Equal(t, date("2025-09-30"), d.Snapshot().Plan.EndDate)

	require.NoError(t, d.Transition(ctx, SetSessionCount{Count: 3}))
	snap := d.Snapshot()
	assert.Equal(t, 3, snap.SessionCount)
	assert.Equal(t, []types.Date{date("2025-08-31"), date("2025-09-30"), date("2025-10-31")}, snap.Plan.SessionDates)

	requireValidation(t, d.Transition(ctx, SetSessionCount{Count: 0}), StepScheduling, "sessionCount")
	assert.Equal(t, 3, d.Snapshot().SessionCount)
}

func TestDraft_SetSessionCountRejectedForSingleVisit(t *testing.T) {
	d := draftAtScheduling(t, newFakeResolver(), consultation)
	requireValidation(t, d.Transition(context.Background(), SetSessionCount{Count: 2}), StepScheduling, "sessionCount")
}

func TestDraft_BackKeepsLaterData(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00")
	d := draftAtScheduling(t, r, consultation)

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:00"}))
	require.NoError(t, d.Transition(ctx, Next{}))

	require.NoError(t, d.Transition(ctx, Back{}))
	require.NoError(t, d.Transition(ctx, Back{}))
	require.NoError(t, d.Transition(ctx, Back{}))
	require.NoError(t, d.Transition(ctx, Back{}))
	assert.Equal(t, StepPatientSelection, d.Snapshot().Step)

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Transition(ctx, Next{}))
	}

	snap := d.Snapshot()
	assert.Equal(t, StepConfirmation, snap.Step)
	assert.Equal(t, types.TimeString("09:00"), snap.Time)
	assert.ErrorIs(t, d.Transition(ctx, Next{}), ErrInvalidTransition)
}

func TestDraft_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00")
	r.setSlots("2025-06-18", "15:00")
	m := &fakeMetrics{}

	d := New(r, m, logger.NewNop(), WithTimeProvider(fixedTime{now: testNow}))
	require.NoError(t, d.Transition(ctx, SelectExistingPatient{PatientID: 7}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.NoError(t, d.Transition(ctx, SelectService{Service: consultation}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))

	release := r.blockOn("2025-06-16")

	done := make(chan error, 1)
	go func() {
		done <- d.Transition(ctx, SelectDate{Date: date("2025-06-16")})
	}()
	<-r.started

	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-18")}))
	close(release)
	require.NoError(t, <-done)

	snap := d.Snapshot()
	assert.Equal(t, date("2025-06-18"), snap.Date)
	assert.Equal(t, []types.TimeString{"15:00"}, snap.Slots.Available)
	assert.Equal(t, 1, m.stale)
}

func TestDraft_ServiceChangeDiscardsInFlightSlots(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00")
	d := draftAtScheduling(t, r, consultation)
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))

	r.setSlots("2025-06-16", "09:00", "10:00")
	release := r.blockOn("2025-06-16")
	done := make(chan error, 1)
	go func() {
		done <- d.Transition(ctx, RefreshSlots{})
	}()
	<-r.started

	require.NoError(t, d.Transition(ctx, Back{}))
	require.NoError(t, d.Transition(ctx, SelectService{Service: orthodontics}))
	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, []types.TimeString{"09:00"}, d.Snapshot().Slots.Available)
}

func TestDraft_RefreshFailureKeepsStaleSlots(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00", "10:00")
	d := draftAtScheduling(t, r, consultation)
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:00"}))

	r.setSlotsErr(availability.ErrAvailabilityUnavailable)
	err := d.Transition(ctx, RefreshSlots{})
	assert.ErrorIs(t, err, availability.ErrAvailabilityUnavailable)

	snap := d.Snapshot()
	assert.True(t, snap.SlotsStale)
	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, snap.Slots.Available)
	requireValidation(t, d.Transition(ctx, Next{}), StepScheduling, "time")

	r.setSlotsErr(nil)
	require.NoError(t, d.Transition(ctx, RefreshSlots{}))
	assert.False(t, d.Snapshot().SlotsStale)
	require.NoError(t, d.Transition(ctx, Next{}))
}

func TestDraft_RefreshClearsTakenTime(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00", "10:00")
	d := draftAtScheduling(t, r, consultation)
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:00"}))

	r.setSlots("2025-06-16", "10:00")
	require.NoError(t, d.Transition(ctx, RefreshSlots{}))

	snap := d.Snapshot()
	assert.True(t, snap.Time.IsZero())
	assert.Contains(t, snap.FieldErrors, "time")
}

func TestDraft_SubmitLifecycle(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00")
	d := draftAtScheduling(t, r, consultation)

	_, err := d.BeginSubmit()
	requireValidation(t, err, StepScheduling, "step")

	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:00"}))
	require.NoError(t, d.Transition(ctx, Next{}))

	sub, err := d.BeginSubmit()
	require.NoError(t, err)
	require.NotNil(t, sub.Patient.ExistingID)
	assert.Equal(t, int64(7), *sub.Patient.ExistingID)
	assert.Equal(t, int64(1), sub.PractitionerID)
	assert.Equal(t, types.TimeString("09:00"), sub.Time)

	// пока идет отправка, черновик не меняется
	assert.ErrorIs(t, d.Transition(ctx, Back{}), ErrSubmitInProgress)
	_, err = d.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	d.AbortSubmit()
	_, err = d.BeginSubmit()
	require.NoError(t, err)

	d.CompleteSubmit(domain.BookingReference{ID: 99, Kind: domain.BookingKindAppointment})
	assert.True(t, d.IsClosed())
	assert.ErrorIs(t, d.Transition(ctx, Back{}), ErrDraftClosed)

	snap := d.Snapshot()
	require.NotNil(t, snap.Reference)
	assert.Equal(t, int64(99), snap.Reference.ID)
}

func TestDraft_InvalidateSchedule(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-15", "10:00")
	d := draftAtScheduling(t, r, orthodontics)
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SetSessionCount{Count: 6}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-15")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "10:00"}))
	require.NoError(t, d.Transition(ctx, Next{}))
	_, err := d.BeginSubmit()
	require.NoError(t, err)

	d.InvalidateSchedule()

	snap := d.Snapshot()
	assert.Equal(t, StepScheduling, snap.Step)
	assert.True(t, snap.Date.IsZero())
	assert.True(t, snap.Time.IsZero())
	assert.True(t, snap.Plan.IsZero())
	require.NotNil(t, snap.PractitionerID)
	assert.Equal(t, int64(1), *snap.PractitionerID)
	assert.Equal(t, 6, snap.SessionCount)
	require.NotNil(t, snap.ExistingPatientID)
	assert.Equal(t, int64(20), snap.Service.ID())
	assert.Contains(t, snap.FieldErrors, "time")

	// черновик снова можно редактировать
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-15")}))
}

func TestDraft_ConfirmationRevalidatesGates(t *testing.T) {
	ctx := context.Background()
	r := newFakeResolver()
	r.setSlots("2025-06-16", "09:00")
	clock := &fixedTime{now: testNow}
	d := New(r, nil, logger.NewNop(), WithTimeProvider(clock))
	require.NoError(t, d.Transition(ctx, SelectExistingPatient{PatientID: 7}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.NoError(t, d.Transition(ctx, SelectService{Service: consultation}))
	require.NoError(t, d.Transition(ctx, Next{}))
	require.NoError(t, d.Transition(ctx, SelectPractitioner{PractitionerID: 1}))
	require.NoError(t, d.Transition(ctx, SelectDate{Date: date("2025-06-16")}))
	require.NoError(t, d.Transition(ctx, SelectTime{Time: "09:00"}))
	require.NoError(t, d.Transition(ctx, Next{}))

	// пользователь долго смотрел на подтверждение: дата ушла в прошлое
	clock.now = time.Date(2025, time.June, 17, 9, 0, 0, 0, time.UTC)

	_, err := d.BeginSubmit()
	requireValidation(t, err, StepScheduling, "date")
}
