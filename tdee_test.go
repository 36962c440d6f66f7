package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lg/tdee-wizard/internal/apperr"
	"lg/tdee-wizard/internal/session"
)

// setupRouter builds the full router around a fresh session store and a
// no-op logger. No network or config needed.
func setupRouter() (*gin.Engine, *session.Store) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore(time.Hour)
	h := newHandler(store, zap.NewNop())
	return h.newRouter(), store
}

// doRequest sends a request with an optional JSON body.
func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validForm = `{
	"start_date": "2026-01-05",
	"weight": "70",
	"goal_weight": "65",
	"goal_change_per_week": "-0.5",
	"height": "175",
	"age": "25",
	"gender": "Male",
	"activity_level": "moderate"
}`

/* ─── POST /api/tdee ─────────────────────────────────────────────────── */

func TestCalculateTDEE_Success(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, "POST", "/api/tdee", validForm)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1673.75, resp.BMR, 1e-9)
	assert.InDelta(t, 2594.3125, resp.TDEE, 1e-9)
	assert.InDelta(t, 2344.3125, resp.TargetCalories, 1e-9)
	assert.Equal(t, "2026-01-05", resp.StartDate.Format("2006-01-02"))
	require.NotNil(t, resp.ProjectedGoalDate)
	assert.Equal(t, "2026-03-16", resp.ProjectedGoalDate.Format("2006-01-02"))
	assert.Contains(t, resp.Display, "TDEE: 2594.31 kcal/day")
	assert.Equal(t, "70", resp.Fields["weight"])
}

// TestCalculateTDEE_InvalidNumber verifies a non-numeric weight is rejected
// with INVALID_INPUT and no figures.
func TestCalculateTDEE_InvalidNumber(t *testing.T) {
	router, _ := setupRouter()
	body := strings.Replace(validForm, `"weight": "70"`, `"weight": "abc"`, 1)

	w := doRequest(router, "POST", "/api/tdee", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_INPUT", resp["code"])
	assert.Equal(t, "weight", resp["field"])
	assert.NotContains(t, resp, "tdee")
}

func TestCalculateTDEE_MissingField(t *testing.T) {
	router, _ := setupRouter()
	body := strings.Replace(validForm, `"age": "25"`, `"age": ""`, 1)

	w := doRequest(router, "POST", "/api/tdee", body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_FIELD", resp["code"])
	assert.Equal(t, "age", resp["field"])
}

// TestCalculateTDEE_DefaultsActivityLevel: an omitted activity level uses moderate.
func TestCalculateTDEE_DefaultsActivityLevel(t *testing.T) {
	router, _ := setupRouter()
	body := strings.Replace(validForm, `"activity_level": "moderate"`, `"activity_level": ""`, 1)

	w := doRequest(router, "POST", "/api/tdee", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1.55, resp.Multiplier)
	assert.Empty(t, resp.Warnings)
}

func TestCalculateTDEE_UnrecognizedActivityWarns(t *testing.T) {
	router, _ := setupRouter()
	body := strings.Replace(validForm, `"activity_level": "moderate"`, `"activity_level": "marathoner"`, 1)

	w := doRequest(router, "POST", "/api/tdee", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp resultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1.55, resp.Multiplier)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, apperr.UnrecognizedEnum, resp.Warnings[0].Code)
	assert.Equal(t, "activity_level", resp.Warnings[0].Field)
}

// TestCalculateTDEE_OverflowingFigures verifies inputs that parse but drive a
// figure to infinity are rejected with a JSON body instead of a broken 200.
func TestCalculateTDEE_OverflowingFigures(t *testing.T) {
	cases := []struct {
		name, from, to, field string
	}{
		{"weight", `"weight": "70"`, `"weight": "1e308"`, "weight"},
		{"goal change", `"goal_change_per_week": "-0.5"`, `"goal_change_per_week": "1e306"`, "goal_change_per_week"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupRouter()
			body := strings.Replace(validForm, tc.from, tc.to, 1)

			w := doRequest(router, "POST", "/api/tdee", body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "INVALID_INPUT", resp["code"])
			assert.Equal(t, tc.field, resp["field"])
		})
	}
}

func TestCalculateTDEE_MalformedJSON(t *testing.T) {
	router, _ := setupRouter()
	w := doRequest(router, "POST", "/api/tdee", `{"weight": 70`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

/* ─── GET /api/activity-levels ───────────────────────────────────────── */

func TestListActivityLevels(t *testing.T) {
	router, _ := setupRouter()

	w := doRequest(router, "GET", "/api/activity-levels", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []activityLevelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 5)
	assert.Equal(t, "sedentary", resp[0].Level)
	assert.Equal(t, 1.2, resp[0].Multiplier)
	assert.Equal(t, "very_active", resp[4].Level)
	assert.Equal(t, 1.9, resp[4].Multiplier)
}

func TestHealthzAndMetrics(t *testing.T) {
	router, _ := setupRouter()
	assert.Equal(t, http.StatusOK, doRequest(router, "GET", "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, "GET", "/metrics", "").Code)
}
