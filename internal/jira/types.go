// Package jira reads tickets from Jira Cloud through the REST API v3.
package jira

import (
	"errors"
	"time"
)

var (
	// ErrIssueNotFound is returned for keys Jira does not know (or hides).
	ErrIssueNotFound = errors.New("jira issue not found")

	// ErrNotConfigured is returned when no Jira credentials were supplied.
	ErrNotConfigured = errors.New("jira is not configured (set jira.base_url, jira.email and jira.api_token)")
)

// Issue is the subset of a Jira issue the planner works with.
type Issue struct {
	Key            string     `json:"key"`
	Summary        string     `json:"summary"`
	Description    string     `json:"description"` // flattened from ADF
	IssueType      string     `json:"issueType"`
	Status         string     `json:"status"`
	StatusCategory string     `json:"statusCategory"` // "new", "indeterminate" or "done"
	Priority       string     `json:"priority"`
	Assignee       string     `json:"assignee,omitempty"`
	Labels         []string   `json:"labels"`
	Components     []string   `json:"components"`
	StoryPoints    *float64   `json:"storyPoints,omitempty"`
	URL            string     `json:"url"`
	Created        *time.Time `json:"created,omitempty"`
	Updated        *time.Time `json:"updated,omitempty"`
}
