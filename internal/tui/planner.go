// Package tui is the interactive terminal dashboard: plan selection, the
// task list, planning advice and standup generation.
package tui

import (
	"context"

	"github.com/alexanderramin/dayplan/internal/api"
)

// Planner is the slice of the planner API the dashboard uses.
// *apiclient.Client satisfies it.
type Planner interface {
	ListPlans(ctx context.Context) ([]api.Plan, error)
	CreatePlan(ctx context.Context, req api.CreatePlanRequest) (api.Plan, error)
	ListTasks(ctx context.Context, planID string) ([]api.Task, error)
	UpdateTask(ctx context.Context, id string, req api.UpdateTaskRequest) (api.Task, error)
	AnalyzeTask(ctx context.Context, planID, description string) (api.Task, error)
	ImportTask(ctx context.Context, planID, ticketKey string) (api.Task, error)
	RecommendToday(ctx context.Context, req api.RecommendRequest) (string, error)
	TaskGuidance(ctx context.Context, req api.GuidanceRequest) (string, error)
	GenerateStandup(ctx context.Context, date string) (api.Standup, error)
	GenerateInteractiveStandup(ctx context.Context, req api.InteractiveStandupRequest) (api.Standup, error)
}
