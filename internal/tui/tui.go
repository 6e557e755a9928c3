package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures Run.
type Options struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// AltScreen runs the dashboard full-screen.
	AltScreen bool
}

// New builds the root model of the dashboard.
func New(ctx context.Context, planner Planner, opts Options) tea.Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return newAppModel(&SharedState{Planner: planner, Ctx: ctx, Now: now})
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, planner Planner, opts Options) error {
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(New(ctx, planner, opts), progOpts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
