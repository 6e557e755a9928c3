package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
)

type assistService struct {
	assistant intelligence.Assistant
	tickets   intelligence.TicketParser
	analyzer  intelligence.TaskAnalyzer
	issues    intelligence.IssueSource
	observer  UseCaseObserver
}

func NewAssistService(
	assistant intelligence.Assistant,
	tickets intelligence.TicketParser,
	analyzer intelligence.TaskAnalyzer,
	issues intelligence.IssueSource,
	observers ...UseCaseObserver,
) AssistService {
	return &assistService{
		assistant: assistant,
		tickets:   tickets,
		analyzer:  analyzer,
		issues:    issues,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *assistService) Chat(ctx context.Context, in intelligence.ChatInput) (reply *intelligence.ChatReply, err error) {
	defer observe(ctx, s.observer, "chat", map[string]any{"agent_type": in.AgentType, "tier": in.Tier})(&err)
	return s.assistant.Chat(ctx, in)
}

func (s *assistService) ParseTicket(ctx context.Context, key string) (t *domain.ParsedTicket, err error) {
	fields := map[string]any{"jira_key": key}
	defer observe(ctx, s.observer, "parse-ticket", fields)(&err)

	reading, err := s.tickets.Parse(ctx, key)
	if err != nil {
		return nil, err
	}
	fields["fallback"] = reading.Ticket.Fallback
	return reading.Ticket, nil
}

func (s *assistService) AnalyzeTask(ctx context.Context, description string) (*domain.TaskAnalysis, error) {
	return s.analyzer.Analyze(ctx, description)
}

func (s *assistService) Issue(ctx context.Context, key string) (*jira.Issue, error) {
	if strings.TrimSpace(key) == "" {
		return nil, domain.Required("key")
	}
	return s.issues.GetIssue(ctx, key)
}
