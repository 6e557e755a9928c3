package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanArchived  PlanStatus = "archived"
)

// Valid reports whether s is one of the known plan statuses.
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanActive, PlanCompleted, PlanArchived:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "High"
	PriorityMedium TaskPriority = "Medium"
	PriorityLow    TaskPriority = "Low"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskBlocked    TaskStatus = "blocked"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone, TaskBlocked:
		return true
	}
	return false
}

// Open reports whether the task still needs work.
func (s TaskStatus) Open() bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskBlocked
}

type TaskSource string

const (
	SourceManual TaskSource = "manual"
	SourceJira   TaskSource = "jira"
)

func (s TaskSource) Valid() bool {
	return s == SourceManual || s == SourceJira
}

var titleCaser = cases.Title(language.English)

// ParsePriority matches s case-insensitively against the known priorities.
func ParsePriority(s string) (TaskPriority, bool) {
	p := TaskPriority(titleCaser.String(strings.ToLower(strings.TrimSpace(s))))
	return p, p.Valid()
}

// NormalizePriority maps free-form priority names (agent output, Jira
// priority schemes) onto the three task priorities. Unknown names map to
// Medium.
func NormalizePriority(s string) TaskPriority {
	if p, ok := ParsePriority(s); ok {
		return p
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "highest", "critical", "blocker", "urgent", "p0", "p1":
		return PriorityHigh
	case "lowest", "minor", "trivial", "p4", "p5":
		return PriorityLow
	}
	return PriorityMedium
}

// StatusFromJira maps a Jira status (name or status-category key) onto a
// task status. Anything unrecognised starts as todo.
func StatusFromJira(status, categoryKey string) TaskStatus {
	switch strings.ToLower(categoryKey) {
	case "done":
		return TaskDone
	case "indeterminate":
		return TaskInProgress
	case "new":
		return TaskTodo
	}
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "done", "closed", "resolved":
		return TaskDone
	case "in progress", "in review", "in development":
		return TaskInProgress
	case "blocked":
		return TaskBlocked
	}
	return TaskTodo
}
