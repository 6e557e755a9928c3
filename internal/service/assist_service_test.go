package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
)

func TestAssistService_ParseTicket_Fallback(t *testing.T) {
	env := newTestEnv(t)
	env.issues.issues["PROJ-3"] = &jira.Issue{Key: "PROJ-3", Summary: "Crash on save", Status: "To Do", Priority: "Low"}
	env.agent.replies[llm.TaskTicketParse] = "no braces here"

	got, err := env.assistService().ParseTicket(context.Background(), "PROJ-3")
	require.NoError(t, err)
	assert.True(t, got.Fallback)
	assert.Equal(t, "Crash on save", got.Summary)
	assert.Equal(t, "To Do", got.Status)
	assert.Equal(t, "Low", got.Priority)
	assert.Equal(t, "no braces here", got.RawAnalysis)
}

func TestAssistService_Chat(t *testing.T) {
	env := newTestEnv(t)
	env.agent.replies[llm.TaskChat] = "hello"
	reply, err := env.assistService().Chat(context.Background(), intelligence.ChatInput{Message: "hi", AgentType: "project"})
	require.NoError(t, err)
	assert.Equal(t, "hello", reply.Response)
	assert.Equal(t, "project", reply.AgentType)
}

func TestAssistService_AnalyzeTaskDoesNotPersist(t *testing.T) {
	env := newTestEnv(t)
	env.agent.replies[llm.TaskTaskAnalysis] = `{"title":"Do it","priority":"Low"}`
	got, err := env.assistService().AnalyzeTask(context.Background(), "do it eventually")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, got.Priority)

	var count int
	require.NoError(t, env.db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count))
	assert.Zero(t, count)
}

func TestAssistService_Issue(t *testing.T) {
	env := newTestEnv(t)
	env.issues.issues["PROJ-9"] = &jira.Issue{Key: "PROJ-9"}

	is, err := env.assistService().Issue(context.Background(), "PROJ-9")
	require.NoError(t, err)
	assert.Equal(t, "PROJ-9", is.Key)

	_, err = env.assistService().Issue(context.Background(), "PROJ-10")
	assert.ErrorIs(t, err, jira.ErrIssueNotFound)

	_, err = env.assistService().Issue(context.Background(), "")
	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
}
