package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Service represents a billable catalog offering
type Service struct {
	ID                int64
	Name              string
	Category          string
	Price             decimal.Decimal
	IsTreatment       bool
	EstimatedSessions *int // nil = not specified
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ServiceKind is the tag of a classified service
type ServiceKind string

const (
	ServiceKindSingle    ServiceKind = "single"
	ServiceKindTreatment ServiceKind = "treatment"
)

// ClassifiedService is a service tagged as a single visit or a treatment.
// Only the constructors below produce non-zero values, so a single visit
// never carries a session count other than 1.
type ClassifiedService struct {
	service      Service
	kind         ServiceKind
	sessionCount int
}

// NewSingleVisit classifies s as a single visit
func NewSingleVisit(s Service) ClassifiedService {
	return ClassifiedService{service: s, kind: ServiceKindSingle, sessionCount: 1}
}

// NewTreatment classifies s as a treatment with max(1, sessions) sessions
func NewTreatment(s Service, sessions int) ClassifiedService {
	if sessions < MinSessionCount {
		sessions = MinSessionCount
	}
	return ClassifiedService{service: s, kind: ServiceKindTreatment, sessionCount: sessions}
}

// IsZero returns true when no service has been classified
func (c ClassifiedService) IsZero() bool {
	return c.kind == ""
}

// Service returns the underlying catalog record
func (c ClassifiedService) Service() Service { return c.service }

// ID returns the service id
func (c ClassifiedService) ID() int64 { return c.service.ID }

// Kind returns the variant tag
func (c ClassifiedService) Kind() ServiceKind { return c.kind }

// IsTreatment reports whether the service is a treatment
func (c ClassifiedService) IsTreatment() bool { return c.kind == ServiceKindTreatment }

// SessionCount returns the nominal number of sessions (1 for single visits)
func (c ClassifiedService) SessionCount() int { return c.sessionCount }

// PricePerSession returns the catalog price of one session
func (c ClassifiedService) PricePerSession() decimal.Decimal { return c.service.Price }

// MarshalJSON exposes the classification for draft snapshots
func (c ClassifiedService) MarshalJSON() ([]byte, error) {
	if c.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		ID              int64           `json:"id"`
		Name            string          `json:"name"`
		Category        string          `json:"category"`
		Kind            ServiceKind     `json:"kind"`
		SessionCount    int             `json:"sessionCount"`
		PricePerSession decimal.Decimal `json:"pricePerSession"`
	}{
		ID:              c.service.ID,
		Name:            c.service.Name,
		Category:        c.service.Category,
		Kind:            c.kind,
		SessionCount:    c.sessionCount,
		PricePerSession: c.service.Price,
	})
}
