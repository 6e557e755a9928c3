package intelligence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
)

func openTasks() []*domain.Task {
	return []*domain.Task{
		{Title: "Fix Safari login", Priority: domain.PriorityHigh, Status: domain.TaskInProgress, JiraKey: "PROJ-42", Description: "blank page\nafter submit"},
		{Title: "Write ADR for queues", Priority: domain.PriorityLow, Status: domain.TaskTodo},
	}
}

func TestPlanningAdvisor_RecommendToday(t *testing.T) {
	client := &mockAgentClient{response: "1. Fix Safari login"}
	got, err := NewPlanningAdvisor(client).RecommendToday(context.Background(), openTasks())
	require.NoError(t, err)
	assert.Equal(t, "1. Fix Safari login", got)

	assert.Equal(t, llm.TaskPlanning, client.lastReq.Task)
	assert.Equal(t, llm.TierSmart, client.lastReq.Tier)
	assert.Contains(t, client.lastReq.Message, "- [PROJ-42] Fix Safari login (High, in_progress): blank page after submit")
	assert.Contains(t, client.lastReq.Message, "- Write ADR for queues (Low, todo)")
}

func TestPlanningAdvisor_RecommendToday_NoTasks(t *testing.T) {
	client := &mockAgentClient{}
	_, err := NewPlanningAdvisor(client).RecommendToday(context.Background(), nil)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Zero(t, client.calls)
}

func TestPlanningAdvisor_TaskGuidance(t *testing.T) {
	client := &mockAgentClient{response: "**Approach:** reproduce first"}
	task := &domain.Task{Title: "Fix Safari login", Priority: domain.PriorityHigh, Status: domain.TaskTodo}

	got, err := NewPlanningAdvisor(client).TaskGuidance(context.Background(), task)
	require.NoError(t, err)
	assert.Contains(t, got, "reproduce first")
	assert.Equal(t, llm.TaskGuidance, client.lastReq.Task)
	assert.Contains(t, client.lastReq.Message, "Title: Fix Safari login")
	assert.Contains(t, client.lastReq.Message, "Description: N/A")
}

func TestPlanningAdvisor_AgentErrorPropagates(t *testing.T) {
	advisor := NewPlanningAdvisor(&mockAgentClient{err: llm.ErrAgentUnavailable})
	_, err := advisor.RecommendToday(context.Background(), openTasks())
	assert.ErrorIs(t, err, llm.ErrAgentUnavailable)
	_, err = advisor.TaskGuidance(context.Background(), openTasks()[0])
	assert.ErrorIs(t, err, llm.ErrAgentUnavailable)
}
