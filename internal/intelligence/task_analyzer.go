package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
)

const fallbackTitleRunes = 50

type TaskAnalyzer interface {
	// Analyze proposes a title, priority and description for a free-text
	// task. Malformed agent output degrades to DeterministicTaskAnalysis.
	Analyze(ctx context.Context, description string) (*domain.TaskAnalysis, error)
}

type taskAnalyzer struct {
	client llm.AgentClient
}

func NewTaskAnalyzer(client llm.AgentClient) TaskAnalyzer {
	return &taskAnalyzer{client: client}
}

type analysisWire struct {
	Title       string `json:"title"`
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

func (a *taskAnalyzer) Analyze(ctx context.Context, description string) (*domain.TaskAnalysis, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, domain.Required("description")
	}

	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Task:      llm.TaskTaskAnalysis,
		Tier:      llm.TierFast,
		AgentType: "planner",
		Message:   fmt.Sprintf(taskAnalysisPromptTemplate, description),
	})
	if err != nil {
		return nil, err
	}

	wire, err := llm.ExtractJSON(resp.Text, func(w analysisWire) error {
		if strings.TrimSpace(w.Title) == "" {
			return errors.New("title is empty")
		}
		return nil
	})
	if err != nil {
		return DeterministicTaskAnalysis(description), nil
	}

	return &domain.TaskAnalysis{
		Title:       strings.TrimSpace(wire.Title),
		Priority:    domain.NormalizePriority(wire.Priority),
		Description: domain.CoalesceStr(wire.Description, description),
	}, nil
}

// DeterministicTaskAnalysis derives a task from the description alone.
func DeterministicTaskAnalysis(description string) *domain.TaskAnalysis {
	return &domain.TaskAnalysis{
		Title:       domain.Truncate(description, fallbackTitleRunes, "..."),
		Priority:    domain.PriorityMedium,
		Description: description,
	}
}
