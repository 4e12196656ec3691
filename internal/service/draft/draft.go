package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/classifier"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/scheduler"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Draft черновик записи: накапливает выбор пациента, услуги и расписания по шагам.
// Все переходы синхронны и выполняются под мьютексом; запросы доступности
// выполняются вне мьютекса, а их результат применяется, только если выбор
// (врач, дата, услуга) не изменился за время запроса.
type Draft struct {
	mu sync.Mutex

	resolver     AvailabilityResolver
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger

	step Step

	// шаг 1
	patientMode       PatientMode
	existingPatientID int64
	newPatient        domain.NewPatient

	// шаг 2
	service domain.ClassifiedService

	// шаг 3
	practitionerID int64
	workDays       map[int64]domain.WeekdaySet // кеш на время жизни черновика
	date           types.Date
	time           types.TimeString
	slots          domain.SlotSets
	slotsLoaded    bool
	slotsStale     bool
	sessionCount   int
	plan           domain.TreatmentPlan

	// поколение выбора: меняется при смене врача, даты или услуги
	generation uint64

	fieldErrors map[string]string

	submitting bool
	closed     bool
	reference  *domain.BookingReference

	createdAt time.Time
	updatedAt time.Time
}

// Option настройка черновика
type Option func(*Draft)

// WithTimeProvider подменяет источник текущего времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(d *Draft) {
		d.timeProvider = tp
	}
}

// New создает пустой черновик на шаге выбора пациента; metrics может быть nil
func New(resolver AvailabilityResolver, metrics Metrics, logger Logger, opts ...Option) *Draft {
	d := &Draft{
		resolver:     resolver,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		step:         StepPatientSelection,
		workDays:     make(map[int64]domain.WeekdaySet),
		fieldErrors:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.createdAt = d.timeProvider.Now()
	d.updatedAt = d.createdAt
	return d
}

// Transition применяет событие к черновику.
// Возвращает *ValidationError (errors.Is(err, ErrValidation)), если данные шага некорректны,
// либо ошибки классификатора, планировщика и резолвера доступности.
func (d *Draft) Transition(ctx context.Context, event Event) error {
	switch e := event.(type) {
	case SelectPractitioner:
		return d.selectPractitioner(ctx, e)
	case SelectDate:
		return d.selectDate(ctx, e)
	case RefreshSlots:
		return d.refreshSlots(ctx)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkOpen(); err != nil {
		return err
	}

	var err error
	switch e := event.(type) {
	case SelectExistingPatient:
		err = d.selectExistingPatient(e)
	case EnterNewPatient:
		err = d.enterNewPatient(e)
	case SelectService:
		err = d.selectService(e)
	case SelectTime:
		err = d.selectTime(e)
	case SetSessionCount:
		err = d.setSessionCount(e)
	case Next:
		err = d.next()
	case Back:
		err = d.back()
	default:
		return fmt.Errorf("%w: unknown event %T", ErrInvalidTransition, event)
	}

	d.recordErrors(err)
	d.touch()
	return err
}

// checkOpen проверяет, что черновик можно менять. Вызывается под мьютексом
func (d *Draft) checkOpen() error {
	if d.closed {
		return ErrDraftClosed
	}
	if d.submitting {
		return ErrSubmitInProgress
	}
	return nil
}

// checkEditable проверяет, что черновик открыт и находится на шаге step
func (d *Draft) checkEditable(step Step) error {
	if err := d.checkOpen(); err != nil {
		return err
	}
	if d.step != step {
		return fmt.Errorf("%w: step %s data can only be changed on that step (current: %s)",
			ErrInvalidTransition, step, d.step)
	}
	return nil
}

func (d *Draft) today() types.Date {
	return types.DateOf(d.timeProvider.Now())
}

func (d *Draft) touch() {
	d.updatedAt = d.timeProvider.Now()
}

// recordErrors сохраняет ошибки полей последнего перехода
func (d *Draft) recordErrors(err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		d.fieldErrors = make(map[string]string, len(verr.Fields))
		for k, v := range verr.Fields {
			d.fieldErrors[k] = v
		}
		return
	}
	if err == nil {
		d.fieldErrors = make(map[string]string)
	}
}

// ============================================================
// Шаг 1: пациент
// ============================================================

func (d *Draft) selectExistingPatient(e SelectExistingPatient) error {
	if err := d.checkEditable(StepPatientSelection); err != nil {
		return err
	}
	if e.PatientID <= 0 {
		return newValidationError(StepPatientSelection, "patientId", "must be a positive id")
	}

	// режимы взаимоисключающие: поля нового пациента очищаются
	d.patientMode = PatientModeExisting
	d.existingPatientID = e.PatientID
	d.newPatient = domain.NewPatient{}
	return nil
}

func (d *Draft) enterNewPatient(e EnterNewPatient) error {
	if err := d.checkEditable(StepPatientSelection); err != nil {
		return err
	}

	fields := make(map[string]string)
	if e.Patient.Gender != "" && !e.Patient.Gender.IsValid() {
		fields["gender"] = "must be one of male, female, other"
	}
	if !e.Patient.BirthDate.IsZero() && e.Patient.BirthDate.After(d.today()) {
		fields["birthDate"] = "must not be in the future"
	}
	if len(fields) > 0 {
		return &ValidationError{Step: StepPatientSelection, Fields: fields}
	}

	d.patientMode = PatientModeNew
	d.existingPatientID = 0
	d.newPatient = e.Patient
	return nil
}

// ============================================================
// Шаг 2: услуга
// ============================================================

func (d *Draft) selectService(e SelectService) error {
	if err := d.checkEditable(StepServiceSelection); err != nil {
		return err
	}

	classified, err := classifier.Classify(e.Service)
	if err != nil {
		return err
	}

	// выбор новой услуги заменяет прежнюю
	d.service = classified
	d.sessionCount = classified.SessionCount()
	d.generation++

	// дата и время остаются, курс пересчитывается под новую услугу
	if err := d.recomputePlan(); err != nil {
		d.logger.Warn("Draft: plan recompute after service change failed: %v", err)
	}
	return nil
}

// ============================================================
// Шаг 3: расписание
// ============================================================

func (d *Draft) selectPractitioner(ctx context.Context, e SelectPractitioner) error {
	d.mu.Lock()
	if err := d.checkEditable(StepScheduling); err != nil {
		d.mu.Unlock()
		return err
	}
	if e.PractitionerID <= 0 {
		verr := newValidationError(StepScheduling, "practitionerId", "must be a positive id")
		d.recordErrors(verr)
		d.mu.Unlock()
		return verr
	}

	if d.practitionerID != e.PractitionerID {
		d.practitionerID = e.PractitionerID
		d.clearScheduleSelection()
		d.generation++
	}
	d.recordErrors(nil)
	d.touch()
	d.mu.Unlock()

	_, err := d.workDaysFor(ctx, e.PractitionerID)
	return err
}

// workDaysFor возвращает рабочие дни врача из кеша черновика или загружает их
func (d *Draft) workDaysFor(ctx context.Context, practitionerID int64) (domain.WeekdaySet, error) {
	d.mu.Lock()
	days, cached := d.workDays[practitionerID]
	d.mu.Unlock()
	if cached {
		return days, nil
	}

	days, err := d.resolver.WorkDays(ctx, practitionerID)
	if err != nil {
		return 0, err
	}

	d.mu.Lock()
	d.workDays[practitionerID] = days
	d.mu.Unlock()
	return days, nil
}

func (d *Draft) selectDate(ctx context.Context, e SelectDate) error {
	d.mu.Lock()
	if err := d.checkEditable(StepScheduling); err != nil {
		d.mu.Unlock()
		return err
	}
	practitionerID := d.practitionerID
	if verr := d.validateDateInput(e.Date); verr != nil {
		d.recordErrors(verr)
		d.mu.Unlock()
		return verr
	}
	d.mu.Unlock()

	days, err := d.workDaysFor(ctx, practitionerID)
	if err != nil {
		return err
	}

	d.mu.Lock()
	if err := d.checkEditable(StepScheduling); err != nil {
		d.mu.Unlock()
		return err
	}
	if d.practitionerID != practitionerID {
		// врач сменился, пока загружались рабочие дни
		d.mu.Unlock()
		d.logger.Info("Draft: date selection superseded by practitioner change")
		return nil
	}
	if !days.Has(e.Date.Weekday()) {
		// дата вне рабочих дней: слоты не запрашиваются
		verr := newValidationError(StepScheduling, "date",
			fmt.Sprintf("practitioner does not work on %s", domain.WeekdayName(e.Date.Weekday())))
		d.recordErrors(verr)
		d.mu.Unlock()
		return verr
	}

	d.date = e.Date
	d.time = ""
	d.slots = domain.SlotSets{}
	d.slotsLoaded = false
	d.slotsStale = false
	d.generation++
	gen := d.generation

	planErr := d.recomputePlan()
	d.recordErrors(nil)
	d.touch()
	d.mu.Unlock()

	// дата уже сохранена, поэтому слоты загружаются и при ошибке плана
	slotsErr := d.loadSlots(ctx, gen, practitionerID, e.Date)
	if planErr != nil {
		return planErr
	}
	return slotsErr
}

// validateDateInput проверяет дату до запроса рабочих дней. Вызывается под мьютексом
func (d *Draft) validateDateInput(date types.Date) *ValidationError {
	if d.practitionerID == 0 {
		return newValidationError(StepScheduling, "practitionerId", "select a practitioner first")
	}
	if date.IsZero() {
		return newValidationError(StepScheduling, "date", "is required")
	}
	if date.Before(d.today()) {
		return newValidationError(StepScheduling, "date", "must not be in the past")
	}
	return nil
}

func (d *Draft) refreshSlots(ctx context.Context) error {
	d.mu.Lock()
	if err := d.checkOpen(); err != nil {
		d.mu.Unlock()
		return err
	}
	if d.step != StepScheduling && d.step != StepConfirmation {
		d.mu.Unlock()
		return fmt.Errorf("%w: slots can only be refreshed while scheduling or confirming", ErrInvalidTransition)
	}
	if d.practitionerID == 0 || d.date.IsZero() {
		verr := newValidationError(StepScheduling, "date", "select a practitioner and a date first")
		d.recordErrors(verr)
		d.mu.Unlock()
		return verr
	}
	gen := d.generation
	practitionerID, date := d.practitionerID, d.date
	d.mu.Unlock()

	return d.loadSlots(ctx, gen, practitionerID, date)
}

// loadSlots запрашивает слоты вне мьютекса и применяет ответ,
// только если поколение выбора не изменилось
func (d *Draft) loadSlots(ctx context.Context, gen uint64, practitionerID int64, date types.Date) error {
	sets, err := d.resolver.SlotsFor(ctx, practitionerID, date)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.generation != gen || d.closed {
		d.logger.Info("Draft: discarded stale slots for practitioner=%d date=%s", practitionerID, date)
		if d.metrics != nil {
			d.metrics.IncStaleSlotResponses()
		}
		return nil
	}

	if err != nil {
		// известные слоты сохраняются, но помечаются устаревшими
		d.slotsStale = true
		d.touch()
		return err
	}

	d.slots = sets
	d.slotsLoaded = true
	d.slotsStale = false

	// выбранное время могло стать занятым
	if !d.time.IsZero() && !sets.IsAvailable(d.time) {
		d.time = ""
		d.fieldErrors = map[string]string{"time": "selected time is no longer available"}
	}
	d.touch()
	return nil
}

func (d *Draft) selectTime(e SelectTime) error {
	if err := d.checkEditable(StepScheduling); err != nil {
		return err
	}
	if d.date.IsZero() {
		return newValidationError(StepScheduling, "date", "select a date first")
	}
	if err := e.Time.Validate(); err != nil {
		return newValidationError(StepScheduling, "time", "must be in HH:MM format")
	}
	if !d.slotsLoaded || d.slotsStale {
		return newValidationError(StepScheduling, "time", "availability is not up to date, refresh slots")
	}
	if !d.slots.IsAvailable(e.Time) {
		return newValidationError(StepScheduling, "time", "slot is not available")
	}

	d.time = e.Time
	return nil
}

func (d *Draft) setSessionCount(e SetSessionCount) error {
	if err := d.checkEditable(StepScheduling); err != nil {
		return err
	}
	if !d.service.IsTreatment() {
		return newValidationError(StepScheduling, "sessionCount", "only treatments have a session count")
	}
	if e.Count < domain.MinSessionCount || e.Count > domain.MaxSessionCount {
		return newValidationError(StepScheduling, "sessionCount",
			fmt.Sprintf("must be between %d and %d", domain.MinSessionCount, domain.MaxSessionCount))
	}

	d.sessionCount = e.Count
	return d.recomputePlan()
}

// recomputePlan заменяет план курса целиком. Вызывается под мьютексом
func (d *Draft) recomputePlan() error {
	if !d.service.IsTreatment() || d.date.IsZero() {
		d.plan = domain.TreatmentPlan{}
		return nil
	}

	plan, err := scheduler.DeriveSchedule(d.date, d.sessionCount, d.today())
	if err != nil {
		d.plan = domain.TreatmentPlan{}
		return err
	}
	d.plan = plan
	return nil
}

// clearScheduleSelection очищает дату, время, слоты и план. Вызывается под мьютексом
func (d *Draft) clearScheduleSelection() {
	d.date = types.Date{}
	d.time = ""
	d.slots = domain.SlotSets{}
	d.slotsLoaded = false
	d.slotsStale = false
	d.plan = domain.TreatmentPlan{}
}

// ============================================================
// Навигация
// ============================================================

func (d *Draft) next() error {
	if d.step == StepConfirmation {
		return fmt.Errorf("%w: confirmation is the last step, submit the draft instead", ErrInvalidTransition)
	}
	if err := d.checkGate(d.step); err != nil {
		return err
	}
	d.step = d.step.next()
	return nil
}

// back всегда разрешен и не очищает данные последующих шагов
func (d *Draft) back() error {
	d.step = d.step.prev()
	return nil
}

// ============================================================
// Отправка
// ============================================================

// Submission неизменяемый снимок данных черновика для отправки
type Submission struct {
	Patient        domain.PatientSelection
	PractitionerID int64
	Service        domain.ClassifiedService
	Date           types.Date
	Time           types.TimeString
	Plan           domain.TreatmentPlan
}

// BeginSubmit проверяет всю цепочку условий шагов и блокирует черновик до завершения отправки.
// Черновик не на шаге подтверждения или с невыполненным условием дает *ValidationError.
func (d *Draft) BeginSubmit() (Submission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkOpen(); err != nil {
		return Submission{}, err
	}
	if d.step != StepConfirmation {
		return Submission{}, newValidationError(d.step, "step", "draft must be at the confirmation step")
	}
	if err := d.checkAllGates(); err != nil {
		d.recordErrors(err)
		return Submission{}, err
	}

	d.submitting = true
	return d.submissionLocked(), nil
}

func (d *Draft) submissionLocked() Submission {
	s := Submission{
		PractitionerID: d.practitionerID,
		Service:        d.service,
		Date:           d.date,
		Time:           d.time,
		Plan:           d.plan.Clone(),
	}
	switch d.patientMode {
	case PatientModeExisting:
		id := d.existingPatientID
		s.Patient.ExistingID = &id
	case PatientModeNew:
		p := d.newPatient
		s.Patient.New = &p
	}
	return s
}

// AbortSubmit снимает блокировку после неудачной отправки; данные не меняются
func (d *Draft) AbortSubmit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
}

// InvalidateSchedule возвращает черновик на шаг расписания после конфликта слота.
// Врач и количество сессий сохраняются, дата, время, слоты и план очищаются.
func (d *Draft) InvalidateSchedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.submitting = false
	d.clearScheduleSelection()
	d.generation++
	d.step = StepScheduling
	d.fieldErrors = map[string]string{"time": "selected slot was taken, choose another date and time"}
	d.touch()
}

// CompleteSubmit закрывает черновик после успешной записи
func (d *Draft) CompleteSubmit(ref domain.BookingReference) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.submitting = false
	d.closed = true
	d.reference = &ref
	d.touch()
}

// IsClosed возвращает true для отправленного черновика
func (d *Draft) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// UpdatedAt возвращает время последнего изменения
func (d *Draft) UpdatedAt() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.updatedAt
}
