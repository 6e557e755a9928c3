package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
)

// PlanningAdvisor is a stateless pass-through to the agent for daily focus
// and per-task guidance. Responses are free text.
type PlanningAdvisor interface {
	RecommendToday(ctx context.Context, tasks []*domain.Task) (string, error)
	TaskGuidance(ctx context.Context, task *domain.Task) (string, error)
}

type planningAdvisor struct {
	client llm.AgentClient
}

func NewPlanningAdvisor(client llm.AgentClient) PlanningAdvisor {
	return &planningAdvisor{client: client}
}

func (a *planningAdvisor) RecommendToday(ctx context.Context, tasks []*domain.Task) (string, error) {
	if len(tasks) == 0 {
		return "", domain.Invalid("tasks", "no tasks to recommend from")
	}
	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Task:      llm.TaskPlanning,
		Tier:      llm.TierSmart,
		AgentType: "planner",
		Message:   fmt.Sprintf(recommendTodayPromptTemplate, FormatTaskList(tasks)),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (a *planningAdvisor) TaskGuidance(ctx context.Context, task *domain.Task) (string, error) {
	if task == nil || strings.TrimSpace(task.Title) == "" {
		return "", domain.Required("task")
	}
	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Task:      llm.TaskGuidance,
		Tier:      llm.TierSmart,
		AgentType: "planner",
		Message: fmt.Sprintf(taskGuidancePromptTemplate,
			task.Title,
			domain.CoalesceStr(string(task.Priority), string(domain.PriorityMedium)),
			domain.CoalesceStr(string(task.Status), string(domain.TaskTodo)),
			orNA(task.Description),
		),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// FormatTaskList renders tasks one per line as
// "- [KEY] Title (Priority, status): description".
func FormatTaskList(tasks []*domain.Task) string {
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		if t.JiraKey != "" {
			b.WriteString("[" + t.JiraKey + "] ")
		}
		fmt.Fprintf(&b, "%s (%s, %s)", t.Title,
			domain.CoalesceStr(string(t.Priority), string(domain.PriorityMedium)),
			domain.CoalesceStr(string(t.Status), string(domain.TaskTodo)))
		if d := strings.TrimSpace(t.Description); d != "" {
			b.WriteString(": ")
			b.WriteString(domain.Truncate(strings.ReplaceAll(d, "\n", " "), 160, "..."))
		}
	}
	return b.String()
}
