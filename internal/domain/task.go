package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID          string
	PlanID      string
	Title       string
	Description string
	Priority    TaskPriority
	Status      TaskStatus
	Source      TaskSource

	// Jira linkage, empty for manual tasks.
	JiraKey  string
	JiraURL  string
	Estimate *float64
	Assignee string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskPatch is a partial update. Only these four fields are mutable after
// creation; nil means "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
}

// IsEmpty reports whether the patch touches no mutable field.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Priority == nil && p.Status == nil
}

// Validate checks the patch without applying it.
func (p TaskPatch) Validate() error {
	if p.IsEmpty() {
		return Invalid("patch", "no updatable fields provided (allowed: status, priority, title, description)")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Invalid("title", "title must not be empty")
	}
	if _, ok := p.priority(); p.Priority != nil && !ok {
		return Invalid("priority", "invalid priority %q (want High, Medium or Low)", *p.Priority)
	}
	if p.Status != nil && !TaskStatus(*p.Status).Valid() {
		return Invalid("status", "invalid status %q (want todo, in_progress, done or blocked)", *p.Status)
	}
	return nil
}

// priority parses the patched priority case-insensitively, like NewTask.
func (p TaskPatch) priority() (TaskPriority, bool) {
	if p.Priority == nil {
		return "", false
	}
	return ParsePriority(*p.Priority)
}

// ApplyPatch validates p and copies its set fields onto t. On error t is
// left untouched.
func (t *Task) ApplyPatch(p TaskPatch, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if prio, ok := p.priority(); ok {
		t.Priority = prio
	}
	if p.Status != nil {
		t.Status = TaskStatus(*p.Status)
	}
	t.UpdatedAt = now
	return nil
}

// TaskInput describes one task in a bulk replace. Empty enum fields take
// their defaults.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	Source      string
	JiraKey     string
	JiraURL     string
	Estimate    *float64
	Assignee    string
}

// NewTask builds a task for planID from in, applying defaults
// (Medium / todo / manual) and validating enums.
func NewTask(id, planID string, in TaskInput, now time.Time) (*Task, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, Required("title")
	}
	t := &Task{
		ID:          id,
		PlanID:      planID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Priority:    PriorityMedium,
		Status:      TaskTodo,
		Source:      SourceManual,
		JiraKey:     in.JiraKey,
		JiraURL:     in.JiraURL,
		Estimate:    in.Estimate,
		Assignee:    in.Assignee,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Priority != "" {
		p, ok := ParsePriority(in.Priority)
		if !ok {
			return nil, Invalid("priority", "invalid priority %q (want High, Medium or Low)", in.Priority)
		}
		t.Priority = p
	}
	if in.Status != "" {
		t.Status = TaskStatus(in.Status)
		if !t.Status.Valid() {
			return nil, Invalid("status", "invalid status %q (want todo, in_progress, done or blocked)", in.Status)
		}
	}
	if in.Source != "" {
		t.Source = TaskSource(in.Source)
		if !t.Source.Valid() {
			return nil, Invalid("source", "invalid source %q (want manual or jira)", in.Source)
		}
	}
	return t, nil
}
