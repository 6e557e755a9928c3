package service

import (
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/google/uuid"
)

func newID() string {
	return uuid.New().String()
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// dayOf truncates t to its UTC calendar date.
func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// parseDay parses an optional YYYY-MM-DD value, falling back to today.
func parseDay(field, value string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return dayOf(now), nil
	}
	return domain.ParseDate(field, strings.TrimSpace(value))
}

// tasksFromInputs builds transient tasks (no ids, no plan) from inline
// input, used when a caller hands tasks over the wire instead of by id.
func tasksFromInputs(inputs []domain.TaskInput, now time.Time) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(inputs))
	for _, in := range inputs {
		t, err := domain.NewTask("", "", in, now)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func plannedItems(tasks []*domain.Task) []domain.PlannedItem {
	items := make([]domain.PlannedItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, domain.PlannedItem{
			Key:     t.JiraKey,
			Summary: t.Title,
			Status:  string(t.Status),
		})
	}
	return items
}
