package update_schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

type fakeService struct {
	err error
	req *models.ReplaceScheduleRequest
}

func (f *fakeService) Replace(_ context.Context, id int64, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScheduleResponse{
		PractitionerID: id,
		WorkDays:       domain.NewWeekdaySet(time.Monday),
		Rules: []models.RuleResponse{
			{ID: 1, Weekday: "monday", StartTime: "09:00", EndTime: "13:00", SlotDurationMinutes: 30},
		},
	}, nil
}

func serve(svc ScheduleService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/practitioners/{practitionerId}/schedule", NewHandler(svc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/practitioners/5/schedule", strings.NewReader(body)))
	return rec
}

func TestHandler_Replace(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"rules": [{"weekday": "monday", "startTime": "09:00", "endTime": "13:00", "slotDurationMinutes": 30}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, svc.req.Rules, 1)
	assert.Equal(t, "monday", svc.req.Rules[0].Weekday)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []interface{}{"monday"}, body["workDays"])
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "duplicate weekday", err: fmt.Errorf("%w: monday", schedule.ErrDuplicateWeekday), wantStatus: http.StatusUnprocessableEntity},
		{name: "invalid rule", err: fmt.Errorf("%w: rule 0", schedule.ErrInvalidInput), wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown practitioner", err: schedule.ErrPractitionerNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: schedule.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, `{"rules": []}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
