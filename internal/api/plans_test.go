package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rr).Status)
}

func TestCreatePlan_EchoesDates(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createPlan(t)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "2024-01-01", p.StartDate)
	assert.Equal(t, "2024-01-14", p.EndDate)
	assert.Equal(t, "active", p.Status)

	rr := ts.do(t, http.MethodGet, "/api/plans/"+p.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, p, decode[Plan](t, rr))
}

func TestCreatePlan_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing name", CreatePlanRequest{StartDate: "2024-01-01", EndDate: "2024-01-14"}},
		{"bad date", CreatePlanRequest{Name: "x", StartDate: "Jan 1", EndDate: "2024-01-14"}},
		{"bad status", CreatePlanRequest{Name: "x", StartDate: "2024-01-01", EndDate: "2024-01-14", Status: "paused"}},
		{"malformed JSON", `{"name": `},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.do(t, http.MethodPost, "/api/plans", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.NotEmpty(t, decode[ErrorResponse](t, rr).Error)
		})
	}
}

func TestListPlans_NewestFirst(t *testing.T) {
	ts := newTestServer(t)
	for _, name := range []string{"one", "two"} {
		rr := ts.do(t, http.MethodPost, "/api/plans", CreatePlanRequest{Name: name, StartDate: "2024-01-01", EndDate: "2024-01-14"})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := ts.do(t, http.MethodGet, "/api/plans", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	plans := decode[[]Plan](t, rr)
	require.Len(t, plans, 2)
	assert.Equal(t, "two", plans[0].Name)
}

func TestListPlans_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/api/plans", nil)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetPlan_NotFound(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodGet, "/api/plans/nope", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decode[ErrorResponse](t, rr).Error, "not found")
}

func TestUpdatePlanStatus(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createPlan(t)

	rr := ts.do(t, http.MethodPatch, "/api/plans/"+p.ID, UpdatePlanRequest{Status: "completed"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "completed", decode[Plan](t, rr).Status)

	rr = ts.do(t, http.MethodPatch, "/api/plans/"+p.ID, UpdatePlanRequest{Status: "done"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPatch, "/api/plans/missing", UpdatePlanRequest{Status: "active"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
