package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/apiclient"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// resolvePlanID accepts a full plan ID, a unique ID prefix (as printed by
// "plan list") or a plan name.
func resolvePlanID(ctx context.Context, c Client, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	plans, err := c.ListPlans(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input {
			return p.ID, nil
		}
	}
	for _, p := range plans {
		if strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	return oneMatch("plan", input, matches)
}

// resolveTaskID accepts a full task ID or a unique prefix of one.
func resolveTaskID(ctx context.Context, c Client, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	t, err := c.GetTask(ctx, input)
	if err == nil {
		return t.ID, nil
	}
	if !apiclient.IsNotFound(err) {
		return "", err
	}

	plans, err := c.ListPlans(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, p := range plans {
		tasks, err := c.ListTasks(ctx, p.ID)
		if err != nil {
			return "", err
		}
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, input) {
				matches = append(matches, t.ID)
			}
		}
	}
	return oneMatch("task", input, matches)
}

func oneMatch(kind, input string, matches []string) (string, error) {
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

// activePlan picks the plan for commands whose --plan flag was omitted:
// the only active plan, if there is exactly one.
func activePlan(ctx context.Context, c Client) (string, error) {
	plans, err := c.ListPlans(ctx)
	if err != nil {
		return "", err
	}
	var active []api.Plan
	for _, p := range plans {
		if p.Status == string(domain.PlanActive) {
			active = append(active, p)
		}
	}
	switch len(active) {
	case 0:
		return "", fmt.Errorf("no active plan; pass --plan")
	case 1:
		return active[0].ID, nil
	default:
		return "", fmt.Errorf("%d active plans; pass --plan", len(active))
	}
}

func planFlag(ctx context.Context, c Client, input string) (string, error) {
	if input == "" {
		return activePlan(ctx, c)
	}
	return resolvePlanID(ctx, c, input)
}
