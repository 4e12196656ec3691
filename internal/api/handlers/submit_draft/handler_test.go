package submit_draft

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/availability"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
	"github.com/m04kA/SMC-ClinicBooking/internal/service/sessions"
	submitBooking "github.com/m04kA/SMC-ClinicBooking/internal/usecase/submit_booking"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

type fakeUseCase struct {
	ref *domain.BookingReference
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, d *draft.Draft) (*domain.BookingReference, error) {
	if f.err != nil {
		return nil, f.err
	}
	d.CompleteSubmit(*f.ref)
	return f.ref, nil
}

func setup(uc SubmitUseCase) (*mux.Router, string) {
	factory := func() *draft.Draft { return draft.New(nil, nil, logger.NewNop()) }
	registry := sessions.NewRegistry(factory, 0, nil, logger.NewNop())
	id, _ := registry.Create()

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/drafts/{draftId}/submit",
		NewHandler(registry, uc, logger.NewNop()).Handle).Methods(http.MethodPost)
	return router, id
}

func submit(router *mux.Router, id string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/drafts/"+id+"/submit", nil))
	return rec
}

func TestHandler_Submit(t *testing.T) {
	router, id := setup(&fakeUseCase{ref: &domain.BookingReference{ID: 77, Kind: domain.BookingKindTreatment}})

	rec := submit(router, id)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"submitted":true`)
	assert.Contains(t, rec.Body.String(), `"reference":{"id":77,"kind":"treatment"}`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "incomplete draft", err: &draft.ValidationError{Step: draft.StepConfirmation, Fields: map[string]string{"step": "x"}},
			wantStatus: http.StatusUnprocessableEntity},
		{name: "slot conflict", err: submitBooking.ErrSlotConflict, wantStatus: http.StatusConflict},
		{name: "transport", err: submitBooking.ErrSubmitTransport, wantStatus: http.StatusBadGateway},
		{name: "availability down", err: availability.ErrAvailabilityUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "already submitted", err: draft.ErrDraftClosed, wantStatus: http.StatusConflict},
		{name: "in progress", err: draft.ErrSubmitInProgress, wantStatus: http.StatusConflict},
		{name: "invalid input", err: submitBooking.ErrInvalidInput, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, id := setup(&fakeUseCase{err: tt.err})
			assert.Equal(t, tt.wantStatus, submit(router, id).Code)
		})
	}
}

func TestHandler_UnknownDraft(t *testing.T) {
	router, _ := setup(&fakeUseCase{})
	assert.Equal(t, http.StatusNotFound, submit(router, "missing").Code)
}
