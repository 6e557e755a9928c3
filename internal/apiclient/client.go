// Package apiclient is a typed client for the planner HTTP API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
)

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL, e.g. "http://localhost:3001/api".
// Agent-backed endpoints can take minutes, hence the long default timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 3 * time.Minute}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e api.ErrorResponse
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func get[T any](ctx context.Context, c *Client, path string) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, method, path, body, &out)
	return out, err
}

func (c *Client) Health(ctx context.Context) error {
	_, err := get[api.HealthResponse](ctx, c, "/health")
	return err
}

// Plans

func (c *Client) ListPlans(ctx context.Context) ([]api.Plan, error) {
	return get[[]api.Plan](ctx, c, "/plans")
}

func (c *Client) GetPlan(ctx context.Context, id string) (api.Plan, error) {
	return get[api.Plan](ctx, c, "/plans/"+url.PathEscape(id))
}

func (c *Client) CreatePlan(ctx context.Context, req api.CreatePlanRequest) (api.Plan, error) {
	return send[api.Plan](ctx, c, http.MethodPost, "/plans", req)
}

func (c *Client) UpdatePlanStatus(ctx context.Context, id, status string) (api.Plan, error) {
	return send[api.Plan](ctx, c, http.MethodPatch, "/plans/"+url.PathEscape(id), api.UpdatePlanRequest{Status: status})
}

// Tasks

func (c *Client) ListTasks(ctx context.Context, planID string) ([]api.Task, error) {
	return get[[]api.Task](ctx, c, "/tasks?planId="+url.QueryEscape(planID))
}

func (c *Client) GetTask(ctx context.Context, id string) (api.Task, error) {
	return get[api.Task](ctx, c, "/tasks/"+url.PathEscape(id))
}

func (c *Client) AnalyzeTask(ctx context.Context, planID, description string) (api.Task, error) {
	return send[api.Task](ctx, c, http.MethodPost, "/tasks/analyze", api.AnalyzeTaskRequest{Description: description, PlanID: planID})
}

func (c *Client) ImportTask(ctx context.Context, planID, ticketKey string) (api.Task, error) {
	return send[api.Task](ctx, c, http.MethodPost, "/tasks/from-jira", api.ImportTaskRequest{TicketKey: ticketKey, PlanID: planID})
}

func (c *Client) UpdateTask(ctx context.Context, id string, req api.UpdateTaskRequest) (api.Task, error) {
	return send[api.Task](ctx, c, http.MethodPatch, "/tasks/"+url.PathEscape(id), req)
}

func (c *Client) ReplaceTasks(ctx context.Context, planID string, tasks []api.TaskInput) ([]api.Task, error) {
	return send[[]api.Task](ctx, c, http.MethodPost, "/tasks/bulk", api.BulkTasksRequest{PlanID: planID, Tasks: tasks})
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// Work logs

func (c *Client) LogWork(ctx context.Context, req api.LogWorkRequest) (api.WorkLog, error) {
	return send[api.WorkLog](ctx, c, http.MethodPost, "/worklogs", req)
}

func (c *Client) ListWorkLogs(ctx context.Context, date string) ([]api.WorkLog, error) {
	return get[[]api.WorkLog](ctx, c, "/worklogs?date="+url.QueryEscape(date))
}

// Standups

func (c *Client) GenerateStandup(ctx context.Context, date string) (api.Standup, error) {
	return send[api.Standup](ctx, c, http.MethodPost, "/standup/generate", api.GenerateStandupRequest{Date: date})
}

func (c *Client) GenerateInteractiveStandup(ctx context.Context, req api.InteractiveStandupRequest) (api.Standup, error) {
	return send[api.Standup](ctx, c, http.MethodPost, "/standup/generate-interactive", req)
}

func (c *Client) GetStandup(ctx context.Context, date string) (api.Standup, error) {
	return get[api.Standup](ctx, c, "/standup/"+url.PathEscape(date))
}

// Planning

func (c *Client) RecommendToday(ctx context.Context, req api.RecommendRequest) (string, error) {
	resp, err := send[api.RecommendResponse](ctx, c, http.MethodPost, "/planning/recommend-today", req)
	return resp.Recommendation, err
}

func (c *Client) TaskGuidance(ctx context.Context, req api.GuidanceRequest) (string, error) {
	resp, err := send[api.GuidanceResponse](ctx, c, http.MethodPost, "/planning/task-guidance", req)
	return resp.Guidance, err
}

// Agent and issue tracker

func (c *Client) Chat(ctx context.Context, req api.ChatRequest) (intelligence.ChatReply, error) {
	return send[intelligence.ChatReply](ctx, c, http.MethodPost, "/ai/chat", req)
}

func (c *Client) ParseTicket(ctx context.Context, key string) (domain.ParsedTicket, error) {
	return send[domain.ParsedTicket](ctx, c, http.MethodPost, "/ai/parse-ticket", api.ParseTicketRequest{TicketKey: key})
}

func (c *Client) AnalyzeDescription(ctx context.Context, description string) (domain.TaskAnalysis, error) {
	return send[domain.TaskAnalysis](ctx, c, http.MethodPost, "/ai/analyze-task", api.AnalyzeDescriptionRequest{Description: description})
}

func (c *Client) JiraTicket(ctx context.Context, key string) (jira.Issue, error) {
	return get[jira.Issue](ctx, c, "/jira/ticket/"+url.PathEscape(key))
}
