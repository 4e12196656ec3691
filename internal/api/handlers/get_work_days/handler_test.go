package get_work_days

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	getWorkDays "github.com/m04kA/SMC-ClinicBooking/internal/usecase/get_work_days"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

type fakeUseCase struct {
	days domain.WeekdaySet
	err  error
}

func (f fakeUseCase) Execute(context.Context, int64) (domain.WeekdaySet, error) {
	return f.days, f.err
}

func serve(uc GetWorkDaysUseCase, path string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/internal/practitioners/{id}/work-days", NewHandler(uc, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	rec := serve(fakeUseCase{days: domain.NewWeekdaySet(time.Sunday, time.Wednesday)}, "/internal/practitioners/5/work-days")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"practitionerId": 5, "workDays": ["sunday", "wednesday"]}`, rec.Body.String())

	rec = serve(fakeUseCase{}, "/internal/practitioners/-1/work-days")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(fakeUseCase{err: getWorkDays.ErrPractitionerNotFound}, "/internal/practitioners/5/work-days")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(fakeUseCase{err: getWorkDays.ErrInternal}, "/internal/practitioners/5/work-days")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
