// Package agentsvc is the chat-completions gateway the planner's agent
// client talks to. It turns the planner's chat, ticket and standup requests
// into completion calls against a model provider.
package agentsvc

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when a backend is built without credentials.
var ErrMissingAPIKey = errors.New("agent service API key is required")

// Completion is one system + user exchange with a model.
type Completion struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	Thinking    bool
}

// Backend runs completions against a model provider.
type Backend interface {
	Complete(ctx context.Context, c Completion) (string, error)
	Name() string
}

// BackendConfig selects and configures a Backend.
type BackendConfig struct {
	Kind         string
	ZaiBaseURL   string
	ZaiAPIKey    string
	GeminiAPIKey string
}

// NewBackend builds the backend named by cfg.Kind ("zai" or "gemini").
func NewBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	switch cfg.Kind {
	case "", "zai":
		return NewZaiBackend(cfg.ZaiBaseURL, cfg.ZaiAPIKey, nil)
	case "gemini":
		return NewGeminiBackend(ctx, cfg.GeminiAPIKey)
	default:
		return nil, fmt.Errorf("unknown agent backend %q (want zai or gemini)", cfg.Kind)
	}
}
