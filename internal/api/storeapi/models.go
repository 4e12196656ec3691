// Package storeapi описывает формат обмена с хранилищем клиники по HTTP.
// Используется и сервером (обработчики хранилища), и клиентом (integrations/clinicstore).
package storeapi

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// ErrInvalidPayload возвращается при некорректном теле запроса или ответа
var ErrInvalidPayload = errors.New("storeapi: invalid payload")

// Пути внутреннего API хранилища
const (
	PathWorkDays     = "/internal/practitioners/{id}/work-days"
	PathAvailability = "/internal/practitioners/{id}/availability"
	PathService      = "/internal/services/{id}"
	PathCommit       = "/internal/bookings"
)

// WorkDaysResponse рабочие дни врача
type WorkDaysResponse struct {
	PractitionerID int64             `json:"practitionerId"`
	WorkDays       domain.WeekdaySet `json:"workDays"` // ["monday", "wednesday"]
}

// AvailabilityResponse слоты врача на дату
type AvailabilityResponse struct {
	PractitionerID      int64              `json:"practitionerId"`
	Date                types.Date         `json:"date"`
	SlotDurationMinutes int                `json:"slotDurationMinutes"`
	Available           []types.TimeString `json:"available"`
	Occupied            []types.TimeString `json:"occupied"`
}

// SlotSets конвертирует ответ в domain модель
func (r *AvailabilityResponse) SlotSets() *domain.SlotSets {
	return &domain.SlotSets{Available: r.Available, Occupied: r.Occupied}
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	IsTreatment       bool            `json:"isTreatment"`
	EstimatedSessions *int            `json:"estimatedSessions,omitempty"`
	IsActive          bool            `json:"isActive"`
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		Category:          s.Category,
		Price:             s.Price,
		IsTreatment:       s.IsTreatment,
		EstimatedSessions: s.EstimatedSessions,
		IsActive:          s.IsActive,
	}
}

// ToDomain конвертирует DTO в услугу
func (r *ServiceResponse) ToDomain() *domain.Service {
	return &domain.Service{
		ID:                r.ID,
		Name:              r.Name,
		Category:          r.Category,
		Price:             r.Price,
		IsTreatment:       r.IsTreatment,
		EstimatedSessions: r.EstimatedSessions,
		IsActive:          r.IsActive,
	}
}

// NewPatient данные нового пациента
type NewPatient struct {
	FirstName       string     `json:"firstName"`
	PaternalSurname string     `json:"paternalSurname"`
	MaternalSurname string     `json:"maternalSurname"`
	Gender          string     `json:"gender"`
	BirthDate       types.Date `json:"birthDate"`
	Phone           string     `json:"phone,omitempty"`
	Email           string     `json:"email,omitempty"`
}

// Patient существующий пациент или новый
type Patient struct {
	ExistingID *int64      `json:"existingId,omitempty"`
	New        *NewPatient `json:"new,omitempty"`
}

// Treatment часть коммита для курса лечения
type Treatment struct {
	SessionCount int             `json:"sessionCount"`
	SessionDates []types.Date    `json:"sessionDates"`
	EndDate      types.Date      `json:"endDate"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// CommitRequest запрос на фиксацию записи
type CommitRequest struct {
	Kind           string          `json:"kind"` // "appointment" | "treatment"
	Patient        Patient         `json:"patient"`
	PractitionerID int64           `json:"practitionerId"`
	ServiceID      int64           `json:"serviceId"`
	Price          decimal.Decimal `json:"price"`
	Date           types.Date      `json:"date"`
	Time           string          `json:"time"` // "10:00"
	Treatment      *Treatment      `json:"treatment,omitempty"`
}

// CommitResponse ссылка на зафиксированную запись
type CommitResponse struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
}

// FromDomainCommit конвертирует коммит в DTO
func FromDomainCommit(c domain.BookingCommit) *CommitRequest {
	req := &CommitRequest{
		Kind:           string(c.Kind),
		PractitionerID: c.PractitionerID,
		ServiceID:      c.ServiceID,
		Price:          c.Price,
		Date:           c.Date,
		Time:           c.Time.String(),
	}

	if c.Patient.ExistingID != nil {
		id := *c.Patient.ExistingID
		req.Patient.ExistingID = &id
	}
	if p := c.Patient.New; p != nil {
		req.Patient.New = &NewPatient{
			FirstName:       p.FirstName,
			PaternalSurname: p.PaternalSurname,
			MaternalSurname: p.MaternalSurname,
			Gender:          string(p.Gender),
			BirthDate:       p.BirthDate,
			Phone:           p.Phone,
			Email:           p.Email,
		}
	}

	if t := c.Treatment; t != nil {
		req.Treatment = &Treatment{
			SessionCount: t.TotalSessions,
			SessionDates: append([]types.Date(nil), t.Plan.SessionDates...),
			EndDate:      t.Plan.EndDate,
			TotalCost:    t.TotalCost,
		}
	}

	return req
}

// ToDomain конвертирует DTO в коммит; проверяет только формат
func (r *CommitRequest) ToDomain() (domain.BookingCommit, error) {
	kind := domain.BookingKind(r.Kind)
	if !kind.IsValid() {
		return domain.BookingCommit{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidPayload, r.Kind)
	}

	at, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return domain.BookingCommit{}, fmt.Errorf("%w: time: %v", ErrInvalidPayload, err)
	}

	commit := domain.BookingCommit{
		Kind:           kind,
		PractitionerID: r.PractitionerID,
		ServiceID:      r.ServiceID,
		Price:          r.Price,
		Date:           r.Date,
		Time:           at,
	}

	if r.Patient.ExistingID != nil {
		id := *r.Patient.ExistingID
		commit.Patient.ExistingID = &id
	}
	if p := r.Patient.New; p != nil {
		commit.Patient.New = &domain.NewPatient{
			FirstName:       p.FirstName,
			PaternalSurname: p.PaternalSurname,
			MaternalSurname: p.MaternalSurname,
			Gender:          domain.Gender(p.Gender),
			BirthDate:       p.BirthDate,
			Phone:           p.Phone,
			Email:           p.Email,
		}
	}

	if t := r.Treatment; t != nil {
		dates := append([]types.Date(nil), t.SessionDates...)
		commit.Treatment = &domain.TreatmentCommit{
			Plan: domain.TreatmentPlan{
				StartDate:    r.Date,
				SessionCount: t.SessionCount,
				SessionDates: dates,
				EndDate:      t.EndDate,
			},
			TotalSessions: t.SessionCount,
			TotalCost:     t.TotalCost,
		}
	}

	return commit, nil
}
