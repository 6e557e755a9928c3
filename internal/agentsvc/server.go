package agentsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
	"github.com/tidwall/gjson"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
)

const maxBodyBytes = 1 << 20

type Config struct {
	Addr         string
	DefaultModel string
	Logger       *slog.Logger
	// ShutdownTimeout bounds in-flight completions after the serve context
	// is cancelled.
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":3002",
		DefaultModel:    "glm-5",
		Logger:          slog.Default(),
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server exposes a Backend over the agent HTTP protocol.
type Server struct {
	cfg     Config
	backend Backend
	mux     *http.ServeMux
	logger  *slog.Logger
}

func NewServer(cfg Config, backend Backend) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = "glm-5"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	s := &Server{cfg: cfg, backend: backend, mux: http.NewServeMux(), logger: cfg.Logger}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /chat", s.handleChat)
	s.mux.HandleFunc("POST /parse-ticket", s.handleParseTicket)
	s.mux.HandleFunc("POST /generate-standup", s.handleGenerateStandup)
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting agent service", "addr", ln.Addr().String(), "backend", s.backend.Name())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("agent service stopped")
	return nil
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "agent_service"})
}

type chatRequest struct {
	Message         string   `json:"message"`
	AgentType       string   `json:"agent_type"`
	Model           string   `json:"model"`
	MaxTokens       *int     `json:"max_tokens"`
	Temperature     *float64 `json:"temperature"`
	ThinkingEnabled *bool    `json:"thinking_enabled"`
}

type chatResponse struct {
	Response  string `json:"response"`
	Model     string `json:"model"`
	AgentType string `json:"agent_type"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.AgentType == "" {
		req.AgentType = DefaultAgent
	}

	c := Completion{
		Model:       domain.CoalesceStr(req.Model, s.cfg.DefaultModel),
		System:      SystemPrompt(req.AgentType),
		User:        req.Message,
		MaxTokens:   4096,
		Temperature: 0.7,
		Thinking:    true,
	}
	if req.MaxTokens != nil {
		c.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		c.Temperature = *req.Temperature
	}
	if req.ThinkingEnabled != nil {
		c.Thinking = *req.ThinkingEnabled
	}

	text, err := s.complete(r.Context(), "chat", c)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "GLM API error: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: text, Model: c.Model, AgentType: req.AgentType})
}

type parseTicketRequest struct {
	TicketKey  string          `json:"ticket_key"`
	TicketData json.RawMessage `json:"ticket_data"`
	Model      string          `json:"model"`
}

type parsedTicketResponse struct {
	Key         string   `json:"key"`
	Summary     string   `json:"summary"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Description string   `json:"description"`
	Assignee    *string  `json:"assignee"`
	StoryPoints *float64 `json:"story_points"`
	Labels      []string `json:"labels"`
	Components  []string `json:"components"`
	AIAnalysis  string   `json:"ai_analysis"`
}

func (s *Server) handleParseTicket(w http.ResponseWriter, r *http.Request) {
	var req parseTicketRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.TicketKey) == "" {
		writeError(w, http.StatusBadRequest, "ticket_key is required")
		return
	}

	fields := gjson.GetBytes(req.TicketData, "fields")
	ticket := parsedTicketResponse{
		Key:         req.TicketKey,
		Summary:     fields.Get("summary").String(),
		Status:      domain.CoalesceStr(fields.Get("status.name").String(), "Unknown"),
		Priority:    domain.CoalesceStr(fields.Get("priority.name").String(), "Medium"),
		Description: domain.Truncate(descriptionText(fields.Get("description")), 500, ""),
		Labels:      []string{},
		Components:  []string{},
	}
	if name := fields.Get("assignee.displayName").String(); name != "" {
		ticket.Assignee = &name
	}
	for _, l := range fields.Get("labels").Array() {
		ticket.Labels = append(ticket.Labels, l.String())
	}
	for _, c := range fields.Get("components.#.name").Array() {
		ticket.Components = append(ticket.Components, c.String())
	}

	prompt := fmt.Sprintf(ticketAnalysisTemplate,
		req.TicketKey,
		domain.CoalesceStr(ticket.Summary, "N/A"),
		domain.CoalesceStr(fields.Get("status.name").String(), "N/A"),
		domain.CoalesceStr(fields.Get("priority.name").String(), "N/A"),
		domain.CoalesceStr(ticket.Description, "N/A"),
		domain.CoalesceStr(domain.Deref(ticket.Assignee), "Unassigned"),
		domain.CoalesceStr(strings.Join(ticket.Labels, ", "), "none"),
		domain.CoalesceStr(strings.Join(ticket.Components, ", "), "none"),
	)
	text, err := s.complete(r.Context(), "parse-ticket", Completion{
		Model:       domain.CoalesceStr(req.Model, s.cfg.DefaultModel),
		System:      ticketAnalyzerPrompt,
		User:        prompt,
		MaxTokens:   2048,
		Temperature: 0.7,
		Thinking:    true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to parse ticket: "+err.Error())
		return
	}
	ticket.AIAnalysis = text
	writeJSON(w, http.StatusOK, ticket)
}

// descriptionText flattens a Jira description, which is plain text on the
// v2 API and an ADF document on v3.
func descriptionText(v gjson.Result) string {
	switch {
	case !v.Exists() || v.Type == gjson.Null:
		return ""
	case v.IsObject():
		var node models.CommentNodeScheme
		if err := json.Unmarshal([]byte(v.Raw), &node); err != nil {
			return v.Raw
		}
		return jira.ADFToText(&node)
	default:
		return v.String()
	}
}

func (s *Server) handleGenerateStandup(w http.ResponseWriter, r *http.Request) {
	var req llm.StandupRequest
	if !decode(w, r, &req) {
		return
	}

	text, err := s.complete(r.Context(), "generate-standup", Completion{
		Model:       s.cfg.DefaultModel,
		System:      standupAssistantPrompt,
		User:        StandupPrompt(req),
		MaxTokens:   1024,
		Temperature: 0.7,
		Thinking:    true,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate standup: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"standup": text})
}

// StandupPrompt renders yesterday's logs and today's tickets as bullet
// lists.
func StandupPrompt(req llm.StandupRequest) string {
	yesterday := make([]string, 0, len(req.YesterdayLogs))
	for _, l := range req.YesterdayLogs {
		line := "- "
		if l.Ticket != "" {
			line += "[" + l.Ticket + "] "
		}
		line += fmt.Sprintf("%s (%dm)", domain.CoalesceStr(l.Description, "No description"), l.DurationMinutes)
		yesterday = append(yesterday, line)
	}
	today := make([]string, 0, len(req.TodayTickets))
	for _, t := range req.TodayTickets {
		today = append(today, fmt.Sprintf("- [%s] %s (%s)",
			domain.CoalesceStr(t.Key, "Unknown"),
			domain.CoalesceStr(t.Summary, "No summary"),
			domain.CoalesceStr(t.Status, "Unknown")))
	}

	return fmt.Sprintf(standupTemplate,
		domain.CoalesceStr(strings.Join(yesterday, "\n"), "No work logged"),
		domain.CoalesceStr(strings.Join(today, "\n"), "No tickets planned"))
}

func (s *Server) complete(ctx context.Context, endpoint string, c Completion) (string, error) {
	start := time.Now()
	text, err := s.backend.Complete(ctx, c)
	attrs := []any{
		"endpoint", endpoint,
		"backend", s.backend.Name(),
		"model", c.Model,
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		s.logger.WarnContext(ctx, "completion failed", append(attrs, "error", err)...)
		return "", err
	}
	s.logger.InfoContext(ctx, "completion", attrs...)
	return text, nil
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
