package domain

import (
	"strings"
	"time"
)

// Standup is the generated status report for one calendar date.
type Standup struct {
	Date      time.Time
	Content   string
	CreatedAt time.Time
}

// InteractiveStandup is the free-text input of an interactive standup plus
// a snapshot of the tasks currently in flight.
type InteractiveStandup struct {
	YesterdayWork string
	TodayForecast string
	Blockers      string
	Tasks         []*Task
}

// Validate rejects input where every text field is blank.
func (in InteractiveStandup) Validate() error {
	if strings.TrimSpace(in.YesterdayWork) == "" &&
		strings.TrimSpace(in.TodayForecast) == "" &&
		strings.TrimSpace(in.Blockers) == "" {
		return Invalid("standup", "at least one of yesterdayWork, todayForecast or blockers is required")
	}
	return nil
}

// PlannedItem is a task or ticket on today's agenda, flattened for the
// standup prompt.
type PlannedItem struct {
	Key     string
	Summary string
	Status  string
}
