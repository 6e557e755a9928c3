package agentsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultZaiBaseURL is the Z.ai OpenAI-compatible endpoint.
const DefaultZaiBaseURL = "https://api.z.ai/api/paas/v4"

// ZaiBackend calls an OpenAI-compatible /chat/completions endpoint.
type ZaiBackend struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewZaiBackend returns a backend for baseURL. A nil client gets a
// default one with a generous timeout; thinking models are slow.
func NewZaiBackend(baseURL, apiKey string, client *http.Client) (*ZaiBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultZaiBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &ZaiBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    client,
	}, nil
}

func (b *ZaiBackend) Name() string { return "zai" }

type zaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type zaiThinking struct {
	Type string `json:"type"`
}

type zaiRequest struct {
	Model       string       `json:"model"`
	Messages    []zaiMessage `json:"messages"`
	Thinking    zaiThinking  `json:"thinking"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	Temperature float64      `json:"temperature"`
}

func (b *ZaiBackend) Complete(ctx context.Context, c Completion) (string, error) {
	thinking := "disabled"
	if c.Thinking {
		thinking = "enabled"
	}
	data, err := json.Marshal(zaiRequest{
		Model: c.Model,
		Messages: []zaiMessage{
			{Role: "system", Content: c.System},
			{Role: "user", Content: c.User},
		},
		Thinking:    zaiThinking{Type: thinking},
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(raw, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(raw))
		}
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, msg)
	}

	content := gjson.GetBytes(raw, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("response has no choices")
	}
	return content.String(), nil
}
