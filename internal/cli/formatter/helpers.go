package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/dayplan/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return box.Render(content)
}

// HumanDate renders a YYYY-MM-DD date as "Today", "Yesterday",
// "Tomorrow" or "Jan 2, 2006" relative to now. Unparseable input is
// returned unchanged.
func HumanDate(date string, now time.Time) string {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch int(d.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case -1:
		return "Yesterday"
	case 1:
		return "Tomorrow"
	}
	return d.Format("Jan 2, 2006")
}

// FormatMinutes converts raw minutes into "1h 30m" form.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h, m := min/60, min%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func PlanStatusPill(status string) string {
	switch domain.PlanStatus(status) {
	case domain.PlanActive:
		return StyleGreen.Render("● Active")
	case domain.PlanCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.PlanArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(status)
	}
}

func TaskStatusPill(status string) string {
	switch domain.TaskStatus(status) {
	case domain.TaskTodo:
		return StyleBlue.Render("○ Todo")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskDone:
		return StyleDim.Render("✔ Done")
	case domain.TaskBlocked:
		return StyleRed.Render("⊘ Blocked")
	default:
		return StyleDim.Render(status)
	}
}

func PriorityBadge(priority string) string {
	switch domain.TaskPriority(priority) {
	case domain.PriorityHigh:
		return StyleRed.Render("▲ High")
	case domain.PriorityMedium:
		return StyleYellow.Render("■ Medium")
	case domain.PriorityLow:
		return StyleDim.Render("▼ Low")
	default:
		return StyleDim.Render(priority)
	}
}
