package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
)

// fallbackDescriptionRunes caps descriptions copied from the raw issue.
const fallbackDescriptionRunes = 500

// TicketParseError reports agent text that did not contain a usable JSON
// object.
type TicketParseError struct {
	Key    string
	Reason string
	Raw    string
}

func (e *TicketParseError) Error() string {
	return fmt.Sprintf("parsing agent reply for %s: %s", e.Key, e.Reason)
}

// TicketReading is the outcome of the ticket pipeline: the raw issue and
// its structured reading.
type TicketReading struct {
	Issue  *jira.Issue
	Ticket *domain.ParsedTicket
}

type TicketParser interface {
	// Parse fetches key from the tracker and asks the agent for a
	// structured reading. Unparseable agent output yields a fallback
	// reading built from the issue; tracker and transport errors are
	// returned.
	Parse(ctx context.Context, key string) (*TicketReading, error)
}

type ticketParser struct {
	issues IssueSource
	client llm.AgentClient
}

func NewTicketParser(issues IssueSource, client llm.AgentClient) TicketParser {
	return &ticketParser{issues: issues, client: client}
}

func (p *ticketParser) Parse(ctx context.Context, key string) (*TicketReading, error) {
	if strings.TrimSpace(key) == "" {
		return nil, domain.Required("ticketKey")
	}
	issue, err := p.issues.GetIssue(ctx, key)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Chat(ctx, llm.ChatRequest{
		Task:      llm.TaskTicketParse,
		Tier:      llm.TierFast,
		AgentType: "planner",
		Message:   TicketParsePrompt(issue),
	})
	if err != nil {
		return nil, err
	}

	ticket, err := ParseTicketResponse(resp.Text, issue)
	var parseErr *TicketParseError
	if errors.As(err, &parseErr) {
		ticket = FallbackParsedTicket(issue, resp.Text)
	} else if err != nil {
		return nil, err
	}
	return &TicketReading{Issue: issue, Ticket: ticket}, nil
}

// TicketParsePrompt renders the fixed extraction prompt for issue.
func TicketParsePrompt(issue *jira.Issue) string {
	return ticketParseSystemPrompt + "\n\n" + fmt.Sprintf(ticketParsePromptTemplate,
		issue.Key,
		orNA(issue.Summary),
		orNA(issue.Status),
		orNA(issue.Priority),
		orNA(issue.Description),
		domain.CoalesceStr(issue.Assignee, "Unassigned"),
		listOrNone(issue.Labels),
		listOrNone(issue.Components),
	)
}

type ticketWire struct {
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Description string   `json:"description"`
	Assignee    *string  `json:"assignee"`
	StoryPoints *float64 `json:"story_points"`
	Labels      []string `json:"labels"`
	Components  []string `json:"components"`
	Analysis    string   `json:"analysis"`
}

// ParseTicketResponse decodes the JSON object spanning the first '{' to the
// last '}' of raw. Fields the agent left empty are taken from issue. Any
// failure is a *TicketParseError.
func ParseTicketResponse(raw string, issue *jira.Issue) (*domain.ParsedTicket, error) {
	wire, err := llm.ExtractJSON[ticketWire](raw, nil)
	if err != nil {
		return nil, &TicketParseError{
			Key:    issue.Key,
			Reason: strings.TrimPrefix(err.Error(), llm.ErrInvalidOutput.Error()+": "),
			Raw:    raw,
		}
	}

	t := &domain.ParsedTicket{
		Key:         issue.Key,
		Summary:     domain.CoalesceStr(wire.Summary, issue.Summary),
		Status:      domain.CoalesceStr(wire.Status, issue.Status),
		Priority:    domain.CoalesceStr(wire.Priority, issue.Priority),
		Description: domain.CoalesceStr(wire.Description, domain.Truncate(issue.Description, fallbackDescriptionRunes, "")),
		Assignee:    wire.Assignee,
		StoryPoints: wire.StoryPoints,
		Labels:      wire.Labels,
		Components:  wire.Components,
		Analysis:    wire.Analysis,
	}
	if t.Assignee == nil && issue.Assignee != "" {
		t.Assignee = domain.StrPtr(issue.Assignee)
	}
	if t.StoryPoints == nil {
		t.StoryPoints = issue.StoryPoints
	}
	if t.Labels == nil {
		t.Labels = nonNil(issue.Labels)
	}
	if t.Components == nil {
		t.Components = nonNil(issue.Components)
	}
	return t, nil
}

// FallbackParsedTicket builds a reading straight from the issue, carrying
// the agent text verbatim as the analysis.
func FallbackParsedTicket(issue *jira.Issue, raw string) *domain.ParsedTicket {
	return &domain.ParsedTicket{
		Key:         issue.Key,
		Summary:     issue.Summary,
		Status:      issue.Status,
		Priority:    issue.Priority,
		Description: domain.Truncate(issue.Description, fallbackDescriptionRunes, ""),
		Assignee:    domain.StrPtr(issue.Assignee),
		StoryPoints: issue.StoryPoints,
		Labels:      nonNil(issue.Labels),
		Components:  nonNil(issue.Components),
		RawAnalysis: raw,
		Fallback:    true,
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
