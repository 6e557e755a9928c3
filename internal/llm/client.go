package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
)

// ChatRequest is one prompt for the agent service.
type ChatRequest struct {
	Task      TaskType
	Tier      Tier   // empty uses the task default
	AgentType string // agent persona; empty means planner
	Message   string

	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

type ChatResponse struct {
	Text      string
	Model     string
	AgentType string
	LatencyMs int64
}

// StandupLog is one line of yesterday's work sent to /generate-standup.
type StandupLog struct {
	Ticket          string `json:"ticket,omitempty"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
}

// StandupTicket is one item planned for today.
type StandupTicket struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

type StandupRequest struct {
	YesterdayLogs []StandupLog    `json:"yesterday_logs"`
	TodayTickets  []StandupTicket `json:"today_tickets"`
}

// AgentClient talks to the agent service. It is constructed once by the
// composition root and shut down with Close.
type AgentClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	GenerateStandup(ctx context.Context, req StandupRequest) (string, error)
	Health(ctx context.Context) error
	Close() error
}

type httpAgentClient struct {
	cfg       Config
	http      *http.Client
	transport *http.Transport
	observer  Observer
	closed    atomic.Bool
}

// NewAgentClient creates an AgentClient for the service at cfg.URL.
func NewAgentClient(cfg Config, observer Observer) AgentClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 5 * time.Second,
		}).DialContext,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
	}
	return &httpAgentClient{
		cfg:       cfg,
		http:      &http.Client{Transport: transport},
		transport: transport,
		observer:  observer,
	}
}

type chatBody struct {
	Message         string  `json:"message"`
	AgentType       string  `json:"agent_type"`
	Model           string  `json:"model"`
	MaxTokens       int     `json:"max_tokens"`
	Temperature     float64 `json:"temperature"`
	ThinkingEnabled bool    `json:"thinking_enabled"`
}

func (c *httpAgentClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	taskCfg := c.cfg.Task(req.Task)
	tier := req.Tier
	if tier == "" {
		tier = taskCfg.Tier
	}
	agentType := req.AgentType
	if agentType == "" {
		agentType = "planner"
	}
	body := chatBody{
		Message:         req.Message,
		AgentType:       agentType,
		Model:           c.cfg.Model(tier),
		MaxTokens:       taskCfg.MaxTokens,
		Temperature:     taskCfg.Temperature,
		ThinkingEnabled: taskCfg.Thinking,
	}
	if req.Temperature != nil {
		body.Temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		body.MaxTokens = *req.MaxTokens
	}

	start := time.Now()
	raw, err := c.post(ctx, "/chat", body)
	if err == nil {
		err = requireString(raw, "response")
	}
	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Tier:      tier,
		Model:     body.Model,
		Endpoint:  "/chat",
		LatencyMs: latency,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return nil, fmt.Errorf("agent request failed: %w", err)
	}

	return &ChatResponse{
		Text:      gjson.GetBytes(raw, "response").String(),
		Model:     gjson.GetBytes(raw, "model").String(),
		AgentType: gjson.GetBytes(raw, "agent_type").String(),
		LatencyMs: latency,
	}, nil
}

func (c *httpAgentClient) GenerateStandup(ctx context.Context, req StandupRequest) (string, error) {
	if req.YesterdayLogs == nil {
		req.YesterdayLogs = []StandupLog{}
	}
	if req.TodayTickets == nil {
		req.TodayTickets = []StandupTicket{}
	}

	start := time.Now()
	raw, err := c.post(ctx, "/generate-standup", req)
	if err == nil {
		err = requireString(raw, "standup")
	}
	c.observer.OnCallComplete(CallEvent{
		Task:      TaskStandup,
		Tier:      TierSmart,
		Model:     c.cfg.Model(TierSmart),
		Endpoint:  "/generate-standup",
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	if err != nil {
		return "", fmt.Errorf("agent request failed: %w", err)
	}
	return gjson.GetBytes(raw, "standup").String(), nil
}

// Health reports nil when the agent service answers GET /health with
// status "ok".
func (c *httpAgentClient) Health(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/health"), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return classify(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health status %d", ErrUnexpectedResponse, resp.StatusCode)
	}
	if status := gjson.GetBytes(raw, "status").String(); status != "ok" {
		return fmt.Errorf("%w: health status %q", ErrUnexpectedResponse, status)
	}
	return nil
}

// Close releases pooled connections. Later calls fail with ErrClosed.
func (c *httpAgentClient) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.transport.CloseIdleConnections()
	return nil
}

func (c *httpAgentClient) url(path string) string {
	return strings.TrimRight(c.cfg.URL, "/") + path
}

func (c *httpAgentClient) post(ctx context.Context, path string, body any) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("reading response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d: %s", ErrUnexpectedResponse, path, resp.StatusCode, errorDetail(raw))
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: %s returned a non-JSON body", ErrUnexpectedResponse, path)
	}
	return raw, nil
}

// requireString checks that field is a JSON string in raw.
func requireString(raw []byte, field string) error {
	v := gjson.GetBytes(raw, field)
	if v.Type != gjson.String {
		return fmt.Errorf("%w: missing string field %q", ErrUnexpectedResponse, field)
	}
	return nil
}

// errorDetail pulls a readable message out of an error body. The agent
// service uses {"error": ...}; FastAPI-style services use {"detail": ...}.
func errorDetail(raw []byte) string {
	for _, field := range []string{"error", "detail", "message"} {
		if v := gjson.GetBytes(raw, field); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

func classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrAgentUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrAgentUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnexpectedResponse):
		return "UNEXPECTED_RESPONSE"
	case errors.Is(err, ErrClosed):
		return "CLOSED"
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}
