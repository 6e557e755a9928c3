package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
)

type StandupWriter interface {
	// Batch drafts a standup from yesterday's work logs and today's
	// planned items in one /generate-standup call.
	Batch(ctx context.Context, logs []domain.LogLine, planned []domain.PlannedItem) (string, error)
	// Interactive drafts a standup from free-text notes. Input with all
	// three notes blank is rejected before the agent is called.
	Interactive(ctx context.Context, in domain.InteractiveStandup) (string, error)
}

type standupWriter struct {
	client llm.AgentClient
}

func NewStandupWriter(client llm.AgentClient) StandupWriter {
	return &standupWriter{client: client}
}

func (w *standupWriter) Batch(ctx context.Context, logs []domain.LogLine, planned []domain.PlannedItem) (string, error) {
	req := llm.StandupRequest{
		YesterdayLogs: make([]llm.StandupLog, 0, len(logs)),
		TodayTickets:  make([]llm.StandupTicket, 0, len(planned)),
	}
	for _, l := range logs {
		req.YesterdayLogs = append(req.YesterdayLogs, llm.StandupLog{
			Ticket:          l.Ticket,
			Description:     l.Description,
			DurationMinutes: l.DurationMinutes,
		})
	}
	for _, p := range planned {
		req.TodayTickets = append(req.TodayTickets, llm.StandupTicket{
			Key:     domain.CoalesceStr(p.Key, "Task"),
			Summary: p.Summary,
			Status:  p.Status,
		})
	}
	return w.client.GenerateStandup(ctx, req)
}

func (w *standupWriter) Interactive(ctx context.Context, in domain.InteractiveStandup) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	resp, err := w.client.Chat(ctx, llm.ChatRequest{
		Task:      llm.TaskStandup,
		Tier:      llm.TierSmart,
		AgentType: "planner",
		Message:   InteractiveStandupPrompt(in),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// InteractiveStandupPrompt renders the fixed-format standup prompt.
func InteractiveStandupPrompt(in domain.InteractiveStandup) string {
	inFlight := "None"
	var open []*domain.Task
	for _, t := range in.Tasks {
		if t != nil && t.Status.Open() {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		inFlight = FormatTaskList(open)
	}
	return fmt.Sprintf(interactiveStandupPromptTemplate,
		orNone(in.YesterdayWork),
		orNone(in.TodayForecast),
		orNone(in.Blockers),
		inFlight,
	)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return strings.TrimSpace(s)
}
