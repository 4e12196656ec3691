package draft

import (
	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Event действие пользователя над черновиком
type Event interface {
	eventName() string
}

// SelectExistingPatient привязывает существующего пациента
type SelectExistingPatient struct {
	PatientID int64
}

// EnterNewPatient задает (возможно частично) поля нового пациента
type EnterNewPatient struct {
	Patient domain.NewPatient
}

// SelectService выбирает услугу; заменяет ранее выбранную
type SelectService struct {
	Service *domain.Service
}

// SelectPractitioner выбирает врача и загружает его рабочие дни
type SelectPractitioner struct {
	PractitionerID int64
}

// SelectDate выбирает дату (для курса - дату первой сессии) и загружает слоты
type SelectDate struct {
	Date types.Date
}

// SelectTime выбирает слот из доступных на выбранную дату
type SelectTime struct {
	Time types.TimeString
}

// SetSessionCount меняет количество сессий курса
type SetSessionCount struct {
	Count int
}

// RefreshSlots повторно загружает слоты выбранной даты
type RefreshSlots struct{}

// Next переход на следующий шаг
type Next struct{}

// Back возврат на предыдущий шаг
type Back struct{}

func (SelectExistingPatient) eventName() string { return "select_existing_patient" }
func (EnterNewPatient) eventName() string       { return "enter_new_patient" }
func (SelectService) eventName() string         { return "select_service" }
func (SelectPractitioner) eventName() string    { return "select_practitioner" }
func (SelectDate) eventName() string            { return "select_date" }
func (SelectTime) eventName() string            { return "select_time" }
func (SetSessionCount) eventName() string       { return "set_session_count" }
func (RefreshSlots) eventName() string          { return "refresh_slots" }
func (Next) eventName() string                  { return "next" }
func (Back) eventName() string                  { return "back" }

// EventName возвращает имя события для логов и метрик
func EventName(e Event) string {
	if e == nil {
		return ""
	}
	return e.eventName()
}
