package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/tui"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"ui"},
		Short:   "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("the dashboard needs an interactive terminal")
			}
			c := app.client()
			if err := c.Health(cmd.Context()); err != nil {
				return fmt.Errorf("planner API at %s is not reachable (start it with \"dayplan serve\"): %w", app.Config.API.URL, err)
			}
			return tui.Run(cmd.Context(), c, tui.Options{Now: app.Now, AltScreen: true})
		},
	}
}
