package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
)

func TestInteractiveStandup_BlankFieldsRejectedBeforeAgent(t *testing.T) {
	ts := newTestServer(t)
	rr := ts.do(t, http.MethodPost, "/api/standup/generate-interactive",
		InteractiveStandupRequest{YesterdayWork: " ", TodayForecast: "", Blockers: "\t"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Zero(t, ts.agent.callCount())
}

func TestInteractiveStandup_Stored(t *testing.T) {
	ts := newTestServer(t)
	ts.agent.replies[llm.TaskStandup] = "**Yesterday:**\n- reviewed PRs"

	rr := ts.do(t, http.MethodPost, "/api/standup/generate-interactive",
		InteractiveStandupRequest{YesterdayWork: "reviewed PRs", Tasks: []TaskInput{{Title: "Ship it", Status: "in_progress"}}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	st := decode[Standup](t, rr)
	assert.Equal(t, time.Now().UTC().Format(domain.DateLayout), st.Date)

	rr = ts.do(t, http.MethodGet, "/api/standup/"+st.Date, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "**Yesterday:**\n- reviewed PRs", decode[Standup](t, rr).Content)
}

func TestInteractiveStandup_StoredUnderRequestDate(t *testing.T) {
	ts := newTestServer(t)
	ts.agent.replies[llm.TaskStandup] = "**Today:** pairing"

	rr := ts.do(t, http.MethodPost, "/api/standup/generate-interactive",
		InteractiveStandupRequest{TodayForecast: "pairing", Date: "2024-02-29"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "2024-02-29", decode[Standup](t, rr).Date)

	rr = ts.do(t, http.MethodGet, "/api/standup/2024-02-29", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGenerateStandup_RegenerateOverwrites(t *testing.T) {
	ts := newTestServer(t)

	ts.agent.standup = "first"
	rr := ts.do(t, http.MethodPost, "/api/standup/generate", GenerateStandupRequest{Date: "2024-01-03"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	ts.agent.standup = "**second**"
	rr = ts.do(t, http.MethodPost, "/api/standup/generate", GenerateStandupRequest{Date: "2024-01-03"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/standup/2024-01-03", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	st := decode[Standup](t, rr)
	assert.Equal(t, "**second**", st.Content)
	assert.Empty(t, st.HTML)

	rr = ts.do(t, http.MethodGet, "/api/standup/2024-01-03?format=html", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decode[Standup](t, rr).HTML, "<strong>second</strong>")
}

func TestGenerateStandup_EmptyBodyMeansToday(t *testing.T) {
	ts := newTestServer(t)
	ts.agent.standup = "today"
	rr := ts.do(t, http.MethodPost, "/api/standup/generate", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, time.Now().UTC().Format(domain.DateLayout), decode[Standup](t, rr).Date)
}

func TestGetStandup_Errors(t *testing.T) {
	ts := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/standup/2024-01-03", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/standup/yesterday", nil).Code)
}

func TestWorkLogs(t *testing.T) {
	ts := newTestServer(t)
	p := ts.createPlan(t)
	rr := ts.do(t, http.MethodPost, "/api/tasks/bulk", BulkTasksRequest{PlanID: p.ID, Tasks: []TaskInput{{Title: "Fix login"}}})
	task := decode[[]Task](t, rr)[0]

	rr = ts.do(t, http.MethodPost, "/api/worklogs", LogWorkRequest{Date: "2024-01-02", DurationMinutes: 45, Description: "debugging", TaskID: task.ID})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	wl := decode[WorkLog](t, rr)
	require.NotNil(t, wl.TaskID)
	assert.Equal(t, task.ID, *wl.TaskID)
	assert.Nil(t, wl.TicketID)

	rr = ts.do(t, http.MethodGet, "/api/worklogs?date=2024-01-02", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]WorkLog](t, rr), 1)

	rr = ts.do(t, http.MethodPost, "/api/worklogs", LogWorkRequest{Date: "2024-01-02", DurationMinutes: 45, TaskID: task.ID, TicketID: "t"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/worklogs", LogWorkRequest{Date: "2024-01-02", DurationMinutes: 45, TaskID: "missing"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
