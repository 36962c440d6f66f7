package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lg/tdee-wizard/internal/wizard"
)

var wizardValues = []struct{ field, value string }{
	{"start_date", "2026-01-05"},
	{"weight", "70"},
	{"goal_weight", "65"},
	{"goal_change_per_week", "-0.5"},
	{"height", "175"},
	{"age", "25"},
	{"gender", "Male"},
	{"activity_level", "moderate"},
}

func decodeWizard(t *testing.T, body []byte) wizardResponse {
	t.Helper()
	var resp wizardResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

// createAndFill opens a session and walks it to the last step, entering
// weight as given.
func createAndFill(t *testing.T, router *gin.Engine, weight string) string {
	t.Helper()
	w := doRequest(router, "POST", "/api/wizard", "")
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeWizard(t, w.Body.Bytes()).ID

	w = doRequest(router, "POST", "/api/wizard/"+id+"/start", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for i, fv := range wizardValues {
		v := fv.value
		if fv.field == "weight" {
			v = weight
		}
		w = doRequest(router, "PUT", "/api/wizard/"+id+"/fields/"+fv.field, fmt.Sprintf(`{"value":%q}`, v))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		if i < len(wizardValues)-1 {
			w = doRequest(router, "POST", "/api/wizard/"+id+"/next", "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		}
	}
	resp := decodeWizard(t, w.Body.Bytes())
	require.Equal(t, int(wizard.StepActivityLevel), resp.Step)
	require.Equal(t, "submit", resp.NextAction)
	return id
}

func TestWizard_CreateStartsAtWelcome(t *testing.T) {
	router, store := setupRouter()

	w := doRequest(router, "POST", "/api/wizard", "")
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeWizard(t, w.Body.Bytes())
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 0, resp.Step)
	assert.Equal(t, "get_started", resp.NextAction)
	assert.Nil(t, resp.Prompt)
	assert.Equal(t, 8, resp.TotalSteps)
	assert.Equal(t, 1, store.Len())

	w = doRequest(router, "GET", "/api/wizard/"+resp.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
}

// TestWizard_NextWithEmptyFieldIsRejected verifies MISSING_FIELD and that the
// step does not move.
func TestWizard_NextWithEmptyFieldIsRejected(t *testing.T) {
	router, _ := setupRouter()
	w := doRequest(router, "POST", "/api/wizard", "")
	id := decodeWizard(t, w.Body.Bytes()).ID
	doRequest(router, "POST", "/api/wizard/"+id+"/start", "")

	w = doRequest(router, "POST", "/api/wizard/"+id+"/next", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "MISSING_FIELD", errResp["code"])
	assert.Equal(t, "start_date", errResp["field"])

	w = doRequest(router, "GET", "/api/wizard/"+id, "")
	resp := decodeWizard(t, w.Body.Bytes())
	assert.Equal(t, int(wizard.StepStartDate), resp.Step)
	require.NotNil(t, resp.Prompt)
	assert.Equal(t, wizard.KindDate, resp.Prompt.Kind)
}

func TestWizard_SubmitReturnsResultAndDiscardsSession(t *testing.T) {
	router, store := setupRouter()
	id := createAndFill(t, router, "70")

	w := doRequest(router, "POST", "/api/wizard/"+id+"/submit", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 2594.3125, resp.TDEE, 1e-9)
	for _, fv := range wizardValues {
		assert.Equal(t, fv.value, resp.Fields[fv.field], fv.field)
	}

	assert.Equal(t, 0, store.Len())
	w = doRequest(router, "POST", "/api/wizard/"+id+"/submit", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestWizard_SubmitInvalidNumberKeepsSession verifies that weight="abc" yields
// INVALID_INPUT, no result, and a session that can be corrected and resubmitted.
func TestWizard_SubmitInvalidNumberKeepsSession(t *testing.T) {
	router, store := setupRouter()
	id := createAndFill(t, router, "abc")

	w := doRequest(router, "POST", "/api/wizard/"+id+"/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "INVALID_INPUT", errResp["code"])
	assert.Equal(t, "weight", errResp["field"])
	assert.Equal(t, 1, store.Len())

	w = doRequest(router, "PUT", "/api/wizard/"+id+"/fields/weight", `{"value":"70"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(router, "POST", "/api/wizard/"+id+"/submit", "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestWizard_SubmitOverflowKeepsSession(t *testing.T) {
	router, store := setupRouter()
	id := createAndFill(t, router, "1e308")

	w := doRequest(router, "POST", "/api/wizard/"+id+"/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"field":"weight"`)
	assert.Equal(t, 1, store.Len())
}

func TestWizard_InvalidActionConflict(t *testing.T) {
	router, _ := setupRouter()
	w := doRequest(router, "POST", "/api/wizard", "")
	id := decodeWizard(t, w.Body.Bytes()).ID

	w = doRequest(router, "POST", "/api/wizard/"+id+"/submit", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	w = doRequest(router, "POST", "/api/wizard/"+id+"/next", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWizard_SetFieldValidation(t *testing.T) {
	router, _ := setupRouter()
	w := doRequest(router, "POST", "/api/wizard", "")
	id := decodeWizard(t, w.Body.Bytes()).ID
	doRequest(router, "POST", "/api/wizard/"+id+"/start", "")

	w = doRequest(router, "PUT", "/api/wizard/"+id+"/fields/shoe_size", `{"value":"44"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(router, "PUT", "/api/wizard/"+id+"/fields/weight", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWizard_UnknownSessionAndDelete(t *testing.T) {
	router, store := setupRouter()

	assert.Equal(t, http.StatusNotFound, doRequest(router, "GET", "/api/wizard/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, doRequest(router, "POST", "/api/wizard/nope/start", "").Code)

	w := doRequest(router, "POST", "/api/wizard", "")
	id := decodeWizard(t, w.Body.Bytes()).ID
	assert.Equal(t, http.StatusNoContent, doRequest(router, "DELETE", "/api/wizard/"+id, "").Code)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, http.StatusNotFound, doRequest(router, "DELETE", "/api/wizard/"+id, "").Code)
}
