package create_draft

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/service/draft"
	"github.com/m04kA/SMC-ClinicBooking/pkg/logger"
)

type fakeRegistry struct{}

func (fakeRegistry) Create() (string, *draft.Draft) {
	return "d-1", draft.New(nil, nil, logger.NewNop())
}

func TestHandler_Create(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeRegistry{}, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/drafts", nil))

	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "d-1", body["id"])
	assert.Equal(t, "patient_selection", body["step"])
	assert.Equal(t, false, body["submitted"])
}
