package classifier

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/ptr"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		service      *domain.Service
		wantKind     domain.ServiceKind
		wantSessions int
	}{
		{
			name:         "single visit",
			service:      &domain.Service{ID: 1, Price: decimal.NewFromInt(300)},
			wantKind:     domain.ServiceKindSingle,
			wantSessions: 1,
		},
		{
			name:         "single visit ignores nominal sessions",
			service:      &domain.Service{ID: 1, Price: decimal.NewFromInt(300), EstimatedSessions: ptr.Ptr(5)},
			wantKind:     domain.ServiceKindSingle,
			wantSessions: 1,
		},
		{
			name:         "treatment with sessions",
			service:      &domain.Service{ID: 2, Price: decimal.NewFromInt(800), IsTreatment: true, EstimatedSessions: ptr.Ptr(4)},
			wantKind:     domain.ServiceKindTreatment,
			wantSessions: 4,
		},
		{
			name:         "treatment without sessions defaults to one",
			service:      &domain.Service{ID: 3, IsTreatment: true},
			wantKind:     domain.ServiceKindTreatment,
			wantSessions: 1,
		},
		{
			name:         "treatment with non-positive sessions",
			service:      &domain.Service{ID: 3, IsTreatment: true, EstimatedSessions: ptr.Ptr(-2)},
			wantKind:     domain.ServiceKindTreatment,
			wantSessions: 1,
		},
		{
			name:         "single visit ignores oversized nominal sessions",
			service:      &domain.Service{ID: 5, EstimatedSessions: ptr.Ptr(domain.MaxSessionCount + 12)},
			wantKind:     domain.ServiceKindSingle,
			wantSessions: 1,
		},
		{
			name:         "treatment at session limit",
			service:      &domain.Service{ID: 6, IsTreatment: true, EstimatedSessions: ptr.Ptr(domain.MaxSessionCount)},
			wantKind:     domain.ServiceKindTreatment,
			wantSessions: domain.MaxSessionCount,
		},
		{
			name:         "treatment with one session stays treatment",
			service:      &domain.Service{ID: 4, IsTreatment: true, EstimatedSessions: ptr.Ptr(1)},
			wantKind:     domain.ServiceKindTreatment,
			wantSessions: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.service)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind())
			assert.Equal(t, tt.wantSessions, got.SessionCount())
			assert.True(t, tt.service.Price.Equal(got.PricePerSession()))
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	svc := &domain.Service{ID: 9, Price: decimal.RequireFromString("120.00"), IsTreatment: true, EstimatedSessions: ptr.Ptr(6)}

	first, err := Classify(svc)
	require.NoError(t, err)
	second, err := Classify(svc)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		service *domain.Service
	}{
		{"nil service", nil},
		{"zero id", &domain.Service{ID: 0}},
		{"negative id", &domain.Service{ID: -1}},
		{"negative price", &domain.Service{ID: 1, Price: decimal.NewFromInt(-10)}},
		{"treatment above session limit", &domain.Service{ID: 2, IsTreatment: true, EstimatedSessions: ptr.Ptr(domain.MaxSessionCount + 12)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.service)
			assert.ErrorIs(t, err, ErrInvalidService)
		})
	}
}
