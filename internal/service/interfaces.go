package service

import (
	"context"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
)

type PlanService interface {
	Create(ctx context.Context, in CreatePlanInput) (*domain.Plan, error)
	// List returns every plan, newest first.
	List(ctx context.Context) ([]*domain.Plan, error)
	Get(ctx context.Context, id string) (*domain.Plan, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Plan, error)
}

type TaskService interface {
	List(ctx context.Context, planID string) ([]*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	// Analyze turns a free-text description into a persisted manual task.
	Analyze(ctx context.Context, description, planID string) (*domain.Task, error)
	// ImportFromJira turns an issue-tracker ticket into a persisted jira task.
	ImportFromJira(ctx context.Context, key, planID string) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	// BulkReplace swaps every task of the plan for tasks in one transaction.
	BulkReplace(ctx context.Context, planID string, tasks []domain.TaskInput) ([]*domain.Task, error)
	// Delete removes the task. Deleting a missing task is not an error.
	Delete(ctx context.Context, id string) error
}

type WorkLogService interface {
	Log(ctx context.Context, in LogWorkInput) (*domain.WorkLog, error)
	ListByDate(ctx context.Context, date string) ([]*domain.WorkLog, error)
}

type StandupService interface {
	// Generate drafts the standup for date (today when empty) from the
	// previous day's work logs and today's open tasks.
	Generate(ctx context.Context, date string) (*domain.Standup, error)
	GenerateInteractive(ctx context.Context, in InteractiveInput) (*domain.Standup, error)
	Get(ctx context.Context, date string) (*domain.Standup, error)
}

type PlanningService interface {
	RecommendToday(ctx context.Context, in RecommendInput) (string, error)
	TaskGuidance(ctx context.Context, in GuidanceInput) (string, error)
}

// AssistService exposes the agent and issue-tracker pass-throughs.
type AssistService interface {
	Chat(ctx context.Context, in intelligence.ChatInput) (*intelligence.ChatReply, error)
	ParseTicket(ctx context.Context, key string) (*domain.ParsedTicket, error)
	AnalyzeTask(ctx context.Context, description string) (*domain.TaskAnalysis, error)
	Issue(ctx context.Context, key string) (*jira.Issue, error)
}

type CreatePlanInput struct {
	Name      string
	StartDate string
	EndDate   string
	Status    string
}

type LogWorkInput struct {
	Date            string
	DurationMinutes int
	Description     string
	TaskID          string
	TicketID        string
}

type InteractiveInput struct {
	YesterdayWork string
	TodayForecast string
	Blockers      string
	// Tasks is the caller's snapshot of in-flight work. When empty the
	// open tasks of active plans are used.
	Tasks []domain.TaskInput
	// Date stamps the stored standup. Empty means today.
	Date string
}

// RecommendInput selects tasks either by plan or inline. PlanID wins when
// both are set.
type RecommendInput struct {
	PlanID string
	Tasks  []domain.TaskInput
}

// GuidanceInput names a stored task or carries one inline.
type GuidanceInput struct {
	TaskID string
	Task   *domain.TaskInput
}
