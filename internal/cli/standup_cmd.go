package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/tui"
)

func newStandupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standup",
		Short: "Generate and show daily standups",
	}

	cmd.AddCommand(
		newStandupGenerateCmd(app),
		newStandupInteractiveCmd(app),
		newStandupShowCmd(app),
	)

	return cmd
}

func newStandupGenerateCmd(app *App) *cobra.Command {
	var date string
	var raw bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a standup from the previous day's work logs and open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var st api.Standup
			err := app.spin(cmd, "Writing standup...", func() error {
				var err error
				st, err = app.client().GenerateStandup(cmd.Context(), domain.CoalesceStr(date, app.today()))
				return err
			})
			if err != nil {
				return err
			}
			printStandup(cmd, app, raw, st)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Standup date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown unrendered")

	return cmd
}

func newStandupInteractiveCmd(app *App) *cobra.Command {
	var in tui.StandupInput
	var date string
	var raw bool

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Answer the three standup questions and let the agent write it up",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(in.Yesterday) == "" || strings.TrimSpace(in.Today) == "" {
				if !app.interactive() {
					return fmt.Errorf("--yesterday and --today are required without a terminal")
				}
				if err := tui.StandupForm(&in).Run(); err != nil {
					return err
				}
			}

			var st api.Standup
			err := app.spin(cmd, "Writing standup...", func() error {
				var err error
				st, err = app.client().GenerateInteractiveStandup(cmd.Context(), api.InteractiveStandupRequest{
					YesterdayWork: in.Yesterday,
					TodayForecast: in.Today,
					Blockers:      in.BlockersOrNone(),
					Date:          domain.CoalesceStr(date, app.today()),
				})
				return err
			})
			if err != nil {
				return err
			}
			printStandup(cmd, app, raw, st)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Yesterday, "yesterday", "", "What you did yesterday")
	cmd.Flags().StringVar(&in.Today, "today", "", "What you plan to do today")
	cmd.Flags().StringVar(&in.Blockers, "blockers", "", "Blockers (default none)")
	cmd.Flags().StringVar(&date, "date", "", "Standup date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown unrendered")

	return cmd
}

func newStandupShowCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the stored standup for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := app.today()
			if len(args) == 1 {
				date = args[0]
			}
			st, err := app.client().GetStandup(cmd.Context(), date)
			if err != nil {
				return err
			}
			printStandup(cmd, app, raw, st)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the markdown unrendered")

	return cmd
}

func printStandup(cmd *cobra.Command, app *App, raw bool, st api.Standup) {
	if !raw {
		printLine(cmd, formatter.FormatStandupHeader(st, app.now()))
	}
	printMarkdown(cmd, raw, st.Content)
}
