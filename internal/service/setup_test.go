package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/testutil"
)

// fakeAgent stands in for the agent service. Replies are keyed by task type.
type fakeAgent struct {
	mu       sync.Mutex
	replies  map[llm.TaskType]string
	standup  string
	err      error
	chats    []llm.ChatRequest
	standups []llm.StandupRequest
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{replies: map[llm.TaskType]string{}}
}

func (a *fakeAgent) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chats = append(a.chats, req)
	if a.err != nil {
		return nil, a.err
	}
	return &llm.ChatResponse{Text: a.replies[req.Task], Model: "glm-5", AgentType: req.AgentType}, nil
}

func (a *fakeAgent) GenerateStandup(_ context.Context, req llm.StandupRequest) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.standups = append(a.standups, req)
	if a.err != nil {
		return "", a.err
	}
	return a.standup, nil
}

func (a *fakeAgent) Health(context.Context) error { return a.err }
func (a *fakeAgent) Close() error                 { return nil }

func (a *fakeAgent) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.chats) + len(a.standups)
}

type fakeIssues struct {
	issues map[string]*jira.Issue
}

func (f *fakeIssues) GetIssue(_ context.Context, key string) (*jira.Issue, error) {
	if is, ok := f.issues[key]; ok {
		return is, nil
	}
	return nil, jira.ErrIssueNotFound
}

type testEnv struct {
	db       *sql.DB
	uow      db.UnitOfWork
	plans    repository.PlanRepo
	tasks    repository.TaskRepo
	logs     repository.WorkLogRepo
	standups repository.StandupRepo
	tickets  repository.TicketRepo
	agent    *fakeAgent
	issues   *fakeIssues
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		uow:      testutil.NewTestUoW(database),
		plans:    repository.NewSQLitePlanRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		logs:     repository.NewSQLiteWorkLogRepo(database),
		standups: repository.NewSQLiteStandupRepo(database),
		tickets:  repository.NewSQLiteTicketRepo(database),
		agent:    newFakeAgent(),
		issues:   &fakeIssues{issues: map[string]*jira.Issue{}},
	}
}

func (e *testEnv) planService() PlanService {
	return NewPlanService(e.plans)
}

func (e *testEnv) taskService() TaskService {
	return e.taskServiceWith(e.uow)
}

func (e *testEnv) taskServiceWith(uow db.UnitOfWork) TaskService {
	return NewTaskService(e.plans, e.tasks, uow,
		intelligence.NewTaskAnalyzer(e.agent),
		intelligence.NewTicketParser(e.issues, e.agent),
	)
}

func (e *testEnv) workLogService() WorkLogService {
	return NewWorkLogService(e.logs, e.tasks, e.tickets)
}

func (e *testEnv) standupService() *standupService {
	return NewStandupService(e.standups, e.logs, e.tasks, intelligence.NewStandupWriter(e.agent)).(*standupService)
}

func (e *testEnv) planningService() PlanningService {
	return NewPlanningService(e.plans, e.tasks, intelligence.NewPlanningAdvisor(e.agent))
}

func (e *testEnv) assistService() AssistService {
	return NewAssistService(
		intelligence.NewAssistant(e.agent),
		intelligence.NewTicketParser(e.issues, e.agent),
		intelligence.NewTaskAnalyzer(e.agent),
		e.issues,
	)
}
