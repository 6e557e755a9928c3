package api

import (
	"github.com/alexanderramin/dayplan/internal/domain"
)

// Wire types shared with internal/apiclient. Dates are YYYY-MM-DD,
// timestamps RFC 3339.

type Plan struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type Task struct {
	ID          string   `json:"id"`
	PlanID      string   `json:"planId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Status      string   `json:"status"`
	Source      string   `json:"source"`
	JiraKey     string   `json:"jiraKey,omitempty"`
	JiraURL     string   `json:"jiraUrl,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type WorkLog struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	DurationMinutes int     `json:"durationMinutes"`
	Description     string  `json:"description"`
	TicketID        *string `json:"ticketId,omitempty"`
	TaskID          *string `json:"taskId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

type Standup struct {
	Date      string `json:"date"`
	Content   string `json:"content"`
	HTML      string `json:"html,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type CreatePlanRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status,omitempty"`
}

type UpdatePlanRequest struct {
	Status string `json:"status"`
}

type AnalyzeTaskRequest struct {
	Description string `json:"description"`
	PlanID      string `json:"planId"`
}

type ImportTaskRequest struct {
	TicketKey string `json:"ticketKey"`
	PlanID    string `json:"planId"`
}

// UpdateTaskRequest carries the mutable task fields. Anything else in the
// body is ignored.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	Source      string   `json:"source,omitempty"`
	JiraKey     string   `json:"jiraKey,omitempty"`
	JiraURL     string   `json:"jiraUrl,omitempty"`
	Estimate    *float64 `json:"estimate,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
}

type BulkTasksRequest struct {
	PlanID string      `json:"planId"`
	Tasks  []TaskInput `json:"tasks"`
}

type LogWorkRequest struct {
	Date            string `json:"date"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
	TaskID          string `json:"taskId,omitempty"`
	TicketID        string `json:"ticketId,omitempty"`
}

type GenerateStandupRequest struct {
	Date string `json:"date,omitempty"`
}

type InteractiveStandupRequest struct {
	YesterdayWork string      `json:"yesterdayWork"`
	TodayForecast string      `json:"todayForecast"`
	Blockers      string      `json:"blockers"`
	Tasks         []TaskInput `json:"tasks,omitempty"`
	// Date is the caller's calendar day (YYYY-MM-DD). Empty means today in UTC.
	Date string `json:"date,omitempty"`
}

type RecommendRequest struct {
	PlanID string      `json:"planId,omitempty"`
	Tasks  []TaskInput `json:"tasks,omitempty"`
}

type RecommendResponse struct {
	Recommendation string `json:"recommendation"`
}

type GuidanceRequest struct {
	TaskID string     `json:"taskId,omitempty"`
	Task   *TaskInput `json:"task,omitempty"`
}

type GuidanceResponse struct {
	Guidance string `json:"guidance"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	AgentType string `json:"agentType,omitempty"`
	Tier      string `json:"tier,omitempty"`
}

type ParseTicketRequest struct {
	TicketKey string `json:"ticketKey"`
}

type AnalyzeDescriptionRequest struct {
	Description string `json:"description"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const timestampFormat = "2006-01-02T15:04:05Z07:00"

func toPlan(p *domain.Plan) Plan {
	return Plan{
		ID:        p.ID,
		Name:      p.Name,
		StartDate: p.StartDate.Format(domain.DateLayout),
		EndDate:   p.EndDate.Format(domain.DateLayout),
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.UTC().Format(timestampFormat),
	}
}

func toPlans(ps []*domain.Plan) []Plan {
	out := make([]Plan, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPlan(p))
	}
	return out
}

func toTask(t *domain.Task) Task {
	return Task{
		ID:          t.ID,
		PlanID:      t.PlanID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Source:      string(t.Source),
		JiraKey:     t.JiraKey,
		JiraURL:     t.JiraURL,
		Estimate:    t.Estimate,
		Assignee:    t.Assignee,
		CreatedAt:   t.CreatedAt.UTC().Format(timestampFormat),
		UpdatedAt:   t.UpdatedAt.UTC().Format(timestampFormat),
	}
}

func toTasks(ts []*domain.Task) []Task {
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		out = append(out, toTask(t))
	}
	return out
}

func toWorkLog(w *domain.WorkLog) WorkLog {
	return WorkLog{
		ID:              w.ID,
		Date:            w.Date.Format(domain.DateLayout),
		DurationMinutes: w.DurationMinutes,
		Description:     w.Description,
		TicketID:        w.TicketID,
		TaskID:          w.TaskID,
		CreatedAt:       w.CreatedAt.UTC().Format(timestampFormat),
	}
}

func toStandup(s *domain.Standup) Standup {
	return Standup{
		Date:      s.Date.Format(domain.DateLayout),
		Content:   s.Content,
		CreatedAt: s.CreatedAt.UTC().Format(timestampFormat),
	}
}

func (in TaskInput) toDomain() domain.TaskInput {
	return domain.TaskInput{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		Source:      in.Source,
		JiraKey:     in.JiraKey,
		JiraURL:     in.JiraURL,
		Estimate:    in.Estimate,
		Assignee:    in.Assignee,
	}
}

func taskInputs(in []TaskInput) []domain.TaskInput {
	out := make([]domain.TaskInput, 0, len(in))
	for _, t := range in {
		out = append(out, t.toDomain())
	}
	return out
}
