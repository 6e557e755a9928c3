package tui

import (
	"context"
	"time"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/domain"
)

// SharedState is shared by pointer across all views.
type SharedState struct {
	Planner Planner
	Ctx     context.Context
	Now     func() time.Time

	ActivePlan *api.Plan

	Width  int
	Height int
}

// ContentHeight is the height left for a view after the header (2 lines)
// and the status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-4, 1)
}

// ContentWidth falls back to 80 columns before the first resize.
func (s *SharedState) ContentWidth() int {
	if s.Width <= 0 {
		return 80
	}
	return s.Width
}

// Today is the local calendar date. Requests that default to "today" send
// it explicitly so the server never substitutes its own clock.
func (s *SharedState) Today() string {
	return s.Now().Format(domain.DateLayout)
}
