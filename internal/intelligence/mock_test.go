package intelligence

import (
	"context"
	"sync"

	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
)

// mockAgentClient returns a fixed response and records requests.
type mockAgentClient struct {
	response string
	standup  string
	err      error

	mu          sync.Mutex
	calls       int
	lastReq     llm.ChatRequest
	lastStandup llm.StandupRequest
}

func (m *mockAgentClient) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastReq = req
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llm.ChatResponse{Text: m.response, Model: "glm-5", AgentType: req.AgentType}, nil
}

func (m *mockAgentClient) GenerateStandup(_ context.Context, req llm.StandupRequest) (string, error) {
	m.mu.Lock()
	m.calls++
	m.lastStandup = req
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	return m.standup, nil
}

func (m *mockAgentClient) Health(context.Context) error { return m.err }
func (m *mockAgentClient) Close() error                 { return nil }

type stubIssues struct {
	issue *jira.Issue
	err   error
	keys  []string
}

func (s *stubIssues) GetIssue(_ context.Context, key string) (*jira.Issue, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return nil, s.err
	}
	return s.issue, nil
}

func sampleIssue() *jira.Issue {
	pts := 3.0
	return &jira.Issue{
		Key:         "PROJ-42",
		Summary:     "Login fails on Safari",
		Description: "Users on Safari 17 see a blank page after submitting the login form.",
		IssueType:   "Bug",
		Status:      "In Progress",
		Priority:    "High",
		Assignee:    "Dana Smith",
		Labels:      []string{"frontend"},
		Components:  []string{"auth"},
		StoryPoints: &pts,
		URL:         "https://acme.atlassian.net/browse/PROJ-42",
	}
}
