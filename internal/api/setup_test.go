package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/alexanderramin/dayplan/internal/testutil"
)

type fakeAgent struct {
	mu      sync.Mutex
	replies map[llm.TaskType]string
	standup string
	err     error
	calls   int
}

func (a *fakeAgent) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return &llm.ChatResponse{Text: a.replies[req.Task], Model: "glm-5", AgentType: req.AgentType}, nil
}

func (a *fakeAgent) GenerateStandup(context.Context, llm.StandupRequest) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.err != nil {
		return "", a.err
	}
	return a.standup, nil
}

func (a *fakeAgent) Health(context.Context) error { return nil }
func (a *fakeAgent) Close() error                 { return nil }

func (a *fakeAgent) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

type fakeIssues map[string]*jira.Issue

func (f fakeIssues) GetIssue(_ context.Context, key string) (*jira.Issue, error) {
	if is, ok := f[key]; ok {
		return is, nil
	}
	return nil, jira.ErrIssueNotFound
}

type testServer struct {
	srv    *Server
	db     *sql.DB
	agent  *fakeAgent
	issues fakeIssues
	logs   *bytes.Buffer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	database := testutil.NewTestDB(t)
	agent := &fakeAgent{replies: map[llm.TaskType]string{}}
	issues := fakeIssues{}

	plans := repository.NewSQLitePlanRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	workLogs := repository.NewSQLiteWorkLogRepo(database)
	tickets := repository.NewSQLiteTicketRepo(database)
	standups := repository.NewSQLiteStandupRepo(database)

	parser := intelligence.NewTicketParser(issues, agent)
	analyzer := intelligence.NewTaskAnalyzer(agent)

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

	srv := New(Config{Logger: logger}, Services{
		Plans:    service.NewPlanService(plans),
		Tasks:    service.NewTaskService(plans, tasks, testutil.NewTestUoW(database), analyzer, parser),
		WorkLogs: service.NewWorkLogService(workLogs, tasks, tickets),
		Standups: service.NewStandupService(standups, workLogs, tasks, intelligence.NewStandupWriter(agent)),
		Planning: service.NewPlanningService(plans, tasks, intelligence.NewPlanningAdvisor(agent)),
		Assist:   service.NewAssistService(intelligence.NewAssistant(agent), parser, analyzer, issues),
	})
	return &testServer{srv: srv, db: database, agent: agent, issues: issues, logs: &logBuf}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "body: %s", rr.Body.String())
	return out
}

func (ts *testServer) createPlan(t *testing.T) Plan {
	t.Helper()
	rr := ts.do(t, http.MethodPost, "/api/plans", CreatePlanRequest{Name: "Sprint 1", StartDate: "2024-01-01", EndDate: "2024-01-14"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[Plan](t, rr)
}
