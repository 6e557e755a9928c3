package intelligence

import (
	"context"
	"slices"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/llm"
)

// AgentTypes lists the agent personas the agent service knows.
var AgentTypes = []string{"planner", "project", "frontend", "ultraworks"}

type ChatInput struct {
	Message   string
	AgentType string
	Tier      string
}

type ChatReply struct {
	Response  string `json:"response"`
	Model     string `json:"model"`
	AgentType string `json:"agentType"`
}

// Assistant forwards free-form chat to the agent service.
type Assistant interface {
	Chat(ctx context.Context, in ChatInput) (*ChatReply, error)
}

type assistant struct {
	client llm.AgentClient
}

func NewAssistant(client llm.AgentClient) Assistant {
	return &assistant{client: client}
}

func (a *assistant) Chat(ctx context.Context, in ChatInput) (*ChatReply, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.Required("message")
	}
	tier, err := llm.ParseTier(in.Tier, llm.TierSmart)
	if err != nil {
		return nil, domain.Invalid("tier", "%s", err.Error())
	}
	agentType := strings.ToLower(domain.CoalesceStr(in.AgentType, "planner"))
	if !slices.Contains(AgentTypes, agentType) {
		return nil, domain.Invalid("agentType", "unknown agent type %q (want %s)", in.AgentType, strings.Join(AgentTypes, ", "))
	}

	resp, err := a.client.Chat(ctx, llm.ChatRequest{
		Task:      llm.TaskChat,
		Tier:      tier,
		AgentType: agentType,
		Message:   in.Message,
	})
	if err != nil {
		return nil, err
	}
	return &ChatReply{
		Response:  resp.Text,
		Model:     resp.Model,
		AgentType: domain.CoalesceStr(resp.AgentType, agentType),
	}, nil
}
