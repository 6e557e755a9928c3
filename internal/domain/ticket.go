package domain

import "time"

// Ticket is a row of the legacy tracker table. Work logs may reference one
// by id or by Jira key.
type Ticket struct {
	ID        string
	JiraKey   string
	Summary   string
	Status    string
	Priority  string
	SprintID  *string
	CreatedAt time.Time
}

// ParsedTicket is the structured reading of an issue-tracker ticket.
// Fallback is set when the agent reply could not be parsed and the fields
// were copied from the raw issue instead.
type ParsedTicket struct {
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Description string   `json:"description"`
	Assignee    *string  `json:"assignee,omitempty"`
	StoryPoints *float64 `json:"story_points,omitempty"`
	Labels      []string `json:"labels"`
	Components  []string `json:"components"`
	Analysis    string   `json:"analysis,omitempty"`
	RawAnalysis string   `json:"raw_analysis,omitempty"`
	Fallback    bool     `json:"fallback"`
}

// TaskAnalysis is what the agent proposes for a free-text task description.
type TaskAnalysis struct {
	Title       string       `json:"title"`
	Priority    TaskPriority `json:"priority"`
	Description string       `json:"description"`
}
