package testutil

import (
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/google/uuid"
)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Plan options
type PlanOption func(*domain.Plan)

func WithPlanDates(start, end time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithPlanStatus(s domain.PlanStatus) PlanOption {
	return func(p *domain.Plan) {
		p.Status = s
	}
}

func WithPlanCreatedAt(t time.Time) PlanOption {
	return func(p *domain.Plan) {
		p.CreatedAt = t
	}
}

func NewTestPlan(name string, opts ...PlanOption) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: Day(2024, 1, 1),
		EndDate:   Day(2024, 1, 14),
		Status:    domain.PlanActive,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithTaskStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithTaskPriority(p domain.TaskPriority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

func WithJira(key, url string, estimate float64) TaskOption {
	return func(t *domain.Task) {
		t.Source = domain.SourceJira
		t.JiraKey = key
		t.JiraURL = url
		t.Estimate = &estimate
	}
}

func NewTestTask(planID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		PlanID:    planID,
		Title:     title,
		Priority:  domain.PriorityMedium,
		Status:    domain.TaskTodo,
		Source:    domain.SourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WorkLog options
type WorkLogOption func(*domain.WorkLog)

func WithLogTicket(ticketID string) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.TicketID = &ticketID
		w.TaskID = nil
	}
}

func WithLogDescription(d string) WorkLogOption {
	return func(w *domain.WorkLog) {
		w.Description = d
	}
}

// NewTestWorkLog builds a 30-minute log against taskID on date.
func NewTestWorkLog(taskID string, date time.Time, opts ...WorkLogOption) *domain.WorkLog {
	w := &domain.WorkLog{
		ID:              uuid.New().String(),
		Date:            date,
		DurationMinutes: 30,
		TaskID:          &taskID,
		CreatedAt:       time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func NewTestTicket(key, summary string) *domain.Ticket {
	return &domain.Ticket{
		ID:        uuid.New().String(),
		JiraKey:   key,
		Summary:   summary,
		Status:    "To Do",
		Priority:  "Medium",
		CreatedAt: time.Now().UTC(),
	}
}
