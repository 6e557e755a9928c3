package intelligence

import (
	"context"

	"github.com/alexanderramin/dayplan/internal/jira"
)

// IssueSource fetches raw tickets from the issue tracker.
type IssueSource interface {
	GetIssue(ctx context.Context, key string) (*jira.Issue, error)
}
