package jira

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	v3 "github.com/ctreminiom/go-atlassian/v2/jira/v3"
	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
	"github.com/tidwall/gjson"
)

// DefaultStoryPointsField is the custom field Jira Cloud uses for story
// points on team-managed projects.
const DefaultStoryPointsField = "customfield_10016"

type ClientConfig struct {
	// BaseURL is the Jira Cloud site, e.g. "https://acme.atlassian.net".
	BaseURL  string
	Email    string
	APIToken string
	// StoryPointsField is the custom field holding story points.
	StoryPointsField string
	Timeout          time.Duration
}

// Configured reports whether all credentials are present.
func (c ClientConfig) Configured() bool {
	return c.BaseURL != "" && c.Email != "" && c.APIToken != ""
}

// Client is a read-only Jira client. Each call is a single request: no
// caching, no retries.
type Client struct {
	jira *v3.Client
	cfg  ClientConfig
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.StoryPointsField == "" {
		cfg.StoryPointsField = DefaultStoryPointsField
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := v3.New(&http.Client{Timeout: cfg.Timeout}, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("create jira client: %w", err)
	}
	client.Auth.SetBasicAuth(cfg.Email, cfg.APIToken)
	client.Auth.SetUserAgent("dayplan/1.0")

	return &Client{jira: client, cfg: cfg}, nil
}

func (c *Client) issueFields() []string {
	return []string{
		"summary", "description", "issuetype", "status", "priority",
		"assignee", "labels", "components", "created", "updated",
		c.cfg.StoryPointsField,
	}
}

// GetIssue fetches one issue by key.
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return nil, fmt.Errorf("jira fetch failed: empty issue key")
	}

	raw, resp, err := c.jira.Issue.Get(ctx, key, c.issueFields(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%s: %w", key, ErrIssueNotFound)
		}
		if resp != nil {
			return nil, fmt.Errorf("jira fetch failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("jira fetch failed: %w", err)
	}

	issue := convertIssue(raw)
	issue.URL = c.cfg.BaseURL + "/browse/" + issue.Key
	if resp != nil {
		issue.StoryPoints = storyPoints(resp.Bytes.Bytes(), c.cfg.StoryPointsField)
	}
	return &issue, nil
}

// storyPoints reads a numeric custom field from the raw issue body.
// go-atlassian does not model custom fields.
func storyPoints(body []byte, field string) *float64 {
	v := gjson.GetBytes(body, "fields."+field)
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

func convertIssue(issue *models.IssueScheme) Issue {
	if issue == nil {
		return Issue{}
	}
	out := Issue{Key: issue.Key, Labels: []string{}, Components: []string{}}
	f := issue.Fields
	if f == nil {
		return out
	}

	out.Summary = f.Summary
	out.Description = ADFToText(f.Description)
	if f.IssueType != nil {
		out.IssueType = f.IssueType.Name
	}
	if f.Status != nil {
		out.Status = f.Status.Name
		if f.Status.StatusCategory != nil {
			out.StatusCategory = f.Status.StatusCategory.Key
		}
	}
	if f.Priority != nil {
		out.Priority = f.Priority.Name
	}
	if f.Assignee != nil {
		out.Assignee = f.Assignee.DisplayName
	}
	if f.Labels != nil {
		out.Labels = f.Labels
	}
	for _, comp := range f.Components {
		if comp != nil && comp.Name != "" {
			out.Components = append(out.Components, comp.Name)
		}
	}
	if f.Created != nil {
		t := time.Time(*f.Created)
		out.Created = &t
	}
	if f.Updated != nil {
		t := time.Time(*f.Updated)
		out.Updated = &t
	}
	return out
}

// Unconfigured stands in for a Client when no credentials were supplied.
type Unconfigured struct{}

func (Unconfigured) GetIssue(context.Context, string) (*Issue, error) {
	return nil, ErrNotConfigured
}
