package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/jira"
)

func FormatPlanList(plans []api.Plan) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			p.StartDate + Dim(" → ") + p.EndDate,
			PlanStatusPill(p.Status),
		})
	}
	return RenderTable([]string{"ID", "NAME", "DATES", "STATUS"}, rows)
}

func FormatPlan(p api.Plan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), PlanStatusPill(p.Status))
	fmt.Fprintf(&b, "%s %s → %s\n", Dim("Dates:"), p.StartDate, p.EndDate)
	fmt.Fprintf(&b, "%s %s", Dim("ID:"), p.ID)
	return b.String()
}

// FormatTaskList renders tasks as a table. The key column shows the Jira
// key for imported tasks and is blank otherwise.
func FormatTaskList(tasks []api.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.ID),
			StylePurple.Render(t.JiraKey),
			domain.Truncate(t.Title, 48, "…"),
			PriorityBadge(t.Priority),
			TaskStatusPill(t.Status),
		})
	}
	return RenderTable([]string{"ID", "KEY", "TITLE", "PRIORITY", "STATUS"}, rows)
}

func FormatTask(t api.Task) string {
	var b strings.Builder
	title := Bold(t.Title)
	if t.JiraKey != "" {
		title = StylePurple.Render("["+t.JiraKey+"]") + " " + title
	}
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "%s  %s\n", PriorityBadge(t.Priority), TaskStatusPill(t.Status))
	if t.Estimate != nil {
		fmt.Fprintf(&b, "%s %g\n", Dim("Estimate:"), *t.Estimate)
	}
	if t.Assignee != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Assignee:"), t.Assignee)
	}
	if t.JiraURL != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Link:"), t.JiraURL)
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	fmt.Fprintf(&b, "\n%s %s", Dim("ID:"), t.ID)
	return b.String()
}

// FormatWorkLogs renders a day's logs followed by the total.
func FormatWorkLogs(logs []api.WorkLog) string {
	rows := make([][]string, 0, len(logs))
	total := 0
	for _, l := range logs {
		ref := ""
		switch {
		case l.TicketID != nil:
			ref = StylePurple.Render(*l.TicketID)
		case l.TaskID != nil:
			ref = TruncID(*l.TaskID)
		}
		rows = append(rows, []string{FormatMinutes(l.DurationMinutes), ref, l.Description})
		total += l.DurationMinutes
	}
	return RenderTable([]string{"TIME", "REF", "DESCRIPTION"}, rows) +
		fmt.Sprintf("%s %s", Dim("Total:"), Bold(FormatMinutes(total)))
}

func FormatStandupHeader(st api.Standup, now time.Time) string {
	return Header("Standup · " + HumanDate(st.Date, now))
}

func FormatParsedTicket(t domain.ParsedTicket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StylePurple.Render("["+t.Key+"]"), Bold(t.Summary))
	fmt.Fprintf(&b, "%s %s   %s %s\n", Dim("Status:"), t.Status, Dim("Priority:"), t.Priority)
	if t.Assignee != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Assignee:"), *t.Assignee)
	}
	if t.StoryPoints != nil {
		fmt.Fprintf(&b, "%s %g\n", Dim("Story points:"), *t.StoryPoints)
	}
	if len(t.Labels) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Labels:"), strings.Join(t.Labels, ", "))
	}
	if len(t.Components) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Components:"), strings.Join(t.Components, ", "))
	}
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	switch {
	case t.Fallback:
		fmt.Fprintf(&b, "\n%s\n%s\n", StyleYellow.Render("Agent reply was not structured; raw analysis:"), t.RawAnalysis)
	case t.Analysis != "":
		fmt.Fprintf(&b, "\n%s\n%s\n", Dim("Analysis:"), t.Analysis)
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatIssue(is jira.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StylePurple.Render("["+is.Key+"]"), Bold(is.Summary))
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		Dim("Type:"), is.IssueType, Dim("Status:"), is.Status, Dim("Priority:"), is.Priority)
	if is.Assignee != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Assignee:"), is.Assignee)
	}
	if is.URL != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Link:"), is.URL)
	}
	if is.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", is.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}
