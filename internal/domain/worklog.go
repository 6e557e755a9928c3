package domain

import (
	"fmt"
	"strings"
	"time"
)

// WorkLog records time spent on exactly one ticket or task.
type WorkLog struct {
	ID              string
	Date            time.Time
	DurationMinutes int
	Description     string
	TicketID        *string
	TaskID          *string
	CreatedAt       time.Time
}

func (w *WorkLog) Validate() error {
	if w.Date.IsZero() {
		return Required("date")
	}
	if w.DurationMinutes <= 0 {
		return Invalid("durationMinutes", "durationMinutes must be positive, got %d", w.DurationMinutes)
	}
	hasTicket := w.TicketID != nil && *w.TicketID != ""
	hasTask := w.TaskID != nil && *w.TaskID != ""
	if hasTicket == hasTask {
		return Invalid("reference", "a work log must reference exactly one of ticketId or taskId")
	}
	return nil
}

// LogLine is a work log flattened for standup generation.
type LogLine struct {
	Ticket          string
	Description     string
	DurationMinutes int
}

func (l LogLine) String() string {
	var b strings.Builder
	if l.Ticket != "" {
		b.WriteString(l.Ticket)
		b.WriteString(": ")
	}
	b.WriteString(l.Description)
	if l.DurationMinutes > 0 {
		b.WriteString(" (")
		b.WriteString(FormatMinutes(l.DurationMinutes))
		b.WriteString(")")
	}
	return b.String()
}

// FormatMinutes renders a duration as "1h30m", "2h" or "45m".
func FormatMinutes(m int) string {
	h, rem := m/60, m%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", rem)
	case rem == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, rem)
	}
}
