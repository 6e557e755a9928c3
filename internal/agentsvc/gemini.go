package agentsvc

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiBackend runs completions on the Gemini API. Model names are passed
// through unchanged, so callers configure Gemini model names as their tiers.
type GeminiBackend struct {
	client *genai.Client
}

func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiBackend{client: client}, nil
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Complete(ctx context.Context, c Completion) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(c.System, genai.RoleUser),
		Temperature:       genai.Ptr(float32(c.Temperature)),
		MaxOutputTokens:   int32(c.MaxTokens),
	}
	if !c.Thinking {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}

	result, err := b.client.Models.GenerateContent(ctx, c.Model,
		[]*genai.Content{genai.NewContentFromText(c.User, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no content returned")
	}
	return text, nil
}
