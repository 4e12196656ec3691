package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

// Типы событий мастера записи
const (
	EventSelectExistingPatient = "select_existing_patient"
	EventEnterNewPatient       = "enter_new_patient"
	EventSelectService         = "select_service"
	EventSelectPractitioner    = "select_practitioner"
	EventSelectDate            = "select_date"
	EventSelectTime            = "select_time"
	EventSetSessionCount       = "set_session_count"
	EventRefreshSlots          = "refresh_slots"
	EventNext                  = "next"
	EventBack                  = "back"
)

// Request модели

// NewPatientPayload поля нового пациента; любые поля могут отсутствовать до шага подтверждения
type NewPatientPayload struct {
	FirstName       string `json:"firstName"`
	PaternalSurname string `json:"paternalSurname"`
	MaternalSurname string `json:"maternalSurname"`
	Gender          string `json:"gender"`
	BirthDate       string `json:"birthDate"` // "1990-04-02"
	Phone           string `json:"phone,omitempty"`
	Email           string `json:"email,omitempty"`
}

// EventRequest событие черновика; набор полей зависит от type
type EventRequest struct {
	Type           string             `json:"type"`
	PatientID      *int64             `json:"patientId,omitempty"`
	Patient        *NewPatientPayload `json:"patient,omitempty"`
	ServiceID      *int64             `json:"serviceId,omitempty"`
	PractitionerID *int64             `json:"practitionerId,omitempty"`
	Date           *string            `json:"date,omitempty"` // "2025-06-15"
	Time           *string            `json:"time,omitempty"` // "10:00"
	Count          *int               `json:"count,omitempty"`
}

// ToEvent конвертирует HTTP запрос в событие черновика.
// Для select_service услуга загружается из каталога.
func (r *EventRequest) ToEvent(ctx context.Context, services ServiceLookup) (draft.Event, error) {
	switch r.Type {
	case EventSelectExistingPatient:
		if r.PatientID == nil {
			return nil, newFieldError("patientId", "is required")
		}
		return draft.SelectExistingPatient{PatientID: *r.PatientID}, nil

	case EventEnterNewPatient:
		if r.Patient == nil {
			return nil, newFieldError("patient", "is required")
		}
		patient, err := r.Patient.toDomain()
		if err != nil {
			return nil, err
		}
		return draft.EnterNewPatient{Patient: patient}, nil

	case EventSelectService:
		if r.ServiceID == nil {
			return nil, newFieldError("serviceId", "is required")
		}
		service, err := services.GetService(ctx, *r.ServiceID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, newFieldError("serviceId", "service not found")
			}
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		return draft.SelectService{Service: service}, nil

	case EventSelectPractitioner:
		if r.PractitionerID == nil {
			return nil, newFieldError("practitionerId", "is required")
		}
		return draft.SelectPractitioner{PractitionerID: *r.PractitionerID}, nil

	case EventSelectDate:
		if r.Date == nil {
			return nil, newFieldError("date", "is required")
		}
		date, err := types.ParseDate(*r.Date)
		if err != nil {
			return nil, newFieldError("date", "must be YYYY-MM-DD")
		}
		return draft.SelectDate{Date: date}, nil

	case EventSelectTime:
		if r.Time == nil {
			return nil, newFieldError("time", "is required")
		}
		at, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return nil, newFieldError("time", "must be HH:MM")
		}
		return draft.SelectTime{Time: at}, nil

	case EventSetSessionCount:
		if r.Count == nil {
			return nil, newFieldError("count", "is required")
		}
		return draft.SetSessionCount{Count: *r.Count}, nil

	case EventRefreshSlots:
		return draft.RefreshSlots{}, nil
	case EventNext:
		return draft.Next{}, nil
	case EventBack:
		return draft.Back{}, nil

	default:
		return nil, newFieldError("type", fmt.Sprintf("unknown event %q", r.Type))
	}
}

func (p *NewPatientPayload) toDomain() (domain.NewPatient, error) {
	patient := domain.NewPatient{
		FirstName:       p.FirstName,
		PaternalSurname: p.PaternalSurname,
		MaternalSurname: p.MaternalSurname,
		Gender:          domain.Gender(p.Gender),
		Phone:           p.Phone,
		Email:           p.Email,
	}

	if p.BirthDate != "" {
		birthDate, err := types.ParseDate(p.BirthDate)
		if err != nil {
			return domain.NewPatient{}, newFieldError("birthDate", "must be YYYY-MM-DD")
		}
		patient.BirthDate = birthDate
	}

	return patient, nil
}

// Response модели

// PatientResponse выбор пациента
type PatientResponse struct {
	Mode       string             `json:"mode"` // "", "existing", "new"
	ExistingID *int64             `json:"existingId,omitempty"`
	New        *NewPatientPayload `json:"new,omitempty"`
}

// SlotsResponse слоты выбранной даты
type SlotsResponse struct {
	State     domain.SlotState   `json:"state"`
	Available []types.TimeString `json:"available"`
	Occupied  []types.TimeString `json:"occupied"`
	Stale     bool               `json:"stale"`
}

// PlanResponse производный план курса лечения
type PlanResponse struct {
	StartDate    types.Date      `json:"startDate"`
	SessionCount int             `json:"sessionCount"`
	SessionDates []types.Date    `json:"sessionDates"`
	EndDate      types.Date      `json:"endDate"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

// ReferenceResponse ссылка на созданную запись
type ReferenceResponse struct {
	ID   int64  `json:"id"`
	Kind string `json:"kind"`
}

// DraftResponse состояние черновика
type DraftResponse struct {
	ID             string                   `json:"id"`
	Step           draft.Step               `json:"step"`
	Patient        PatientResponse          `json:"patient"`
	Service        domain.ClassifiedService `json:"service"`
	PractitionerID *int64                   `json:"practitionerId"`
	WorkDays       *domain.WeekdaySet       `json:"workDays"`
	Date           types.Date               `json:"date"`
	Time           *string                  `json:"time"`
	Slots          *SlotsResponse           `json:"slots"`
	SessionCount   int                      `json:"sessionCount,omitempty"`
	Plan           *PlanResponse            `json:"plan"`
	FieldErrors    map[string]string        `json:"fieldErrors,omitempty"`
	Submitted      bool                     `json:"submitted"`
	Reference      *ReferenceResponse       `json:"reference,omitempty"`
	CreatedAt      string                   `json:"createdAt"` // ISO 8601
	UpdatedAt      string                   `json:"updatedAt"`
}

// FromSnapshot конвертирует снимок черновика в HTTP ответ
func FromSnapshot(id string, s draft.Snapshot) *DraftResponse {
	resp := &DraftResponse{
		ID:             id,
		Step:           s.Step,
		Patient:        PatientResponse{Mode: string(s.PatientMode), ExistingID: s.ExistingPatientID},
		Service:        s.Service,
		PractitionerID: s.PractitionerID,
		WorkDays:       s.WorkDays,
		Date:           s.Date,
		SessionCount:   s.SessionCount,
		FieldErrors:    s.FieldErrors,
		Submitted:      s.Submitted,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}

	if p := s.NewPatient; p != nil {
		resp.Patient.New = &NewPatientPayload{
			FirstName:       p.FirstName,
			PaternalSurname: p.PaternalSurname,
			MaternalSurname: p.MaternalSurname,
			Gender:          string(p.Gender),
			BirthDate:       p.BirthDate.String(),
			Phone:           p.Phone,
			Email:           p.Email,
		}
	}

	if !s.Time.IsZero() {
		at := s.Time.String()
		resp.Time = &at
	}

	if s.SlotsLoaded {
		resp.Slots = &SlotsResponse{
			State:     s.Slots.State(),
			Available: nonNil(s.Slots.Available),
			Occupied:  nonNil(s.Slots.Occupied),
			Stale:     s.SlotsStale,
		}
	}

	if !s.Plan.IsZero() {
		resp.Plan = &PlanResponse{
			StartDate:    s.Plan.StartDate,
			SessionCount: s.Plan.SessionCount,
			SessionDates: s.Plan.SessionDates,
			EndDate:      s.Plan.EndDate,
			TotalCost:    s.Service.PricePerSession().Mul(decimal.NewFromInt(int64(s.Plan.SessionCount))),
		}
	}

	if s.Reference != nil {
		resp.Reference = &ReferenceResponse{ID: s.Reference.ID, Kind: string(s.Reference.Kind)}
	}

	return resp
}

func nonNil(labels []types.TimeString) []types.TimeString {
	if labels == nil {
		return []types.TimeString{}
	}
	return labels
}
