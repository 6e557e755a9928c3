package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/jira"
)

func newJiraCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jira",
		Short: "Look at Jira tickets through the planner",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "ticket KEY",
			Short: "Show a ticket as fetched from Jira",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var is jira.Issue
				err := app.spin(cmd, "Fetching "+args[0]+"...", func() error {
					var err error
					is, err = app.client().JiraTicket(cmd.Context(), args[0])
					return err
				})
				if err != nil {
					return err
				}
				printLine(cmd, formatter.FormatIssue(is))
				return nil
			},
		},
		&cobra.Command{
			Use:   "parse KEY",
			Short: "Fetch a ticket and show the agent's structured reading of it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var t domain.ParsedTicket
				err := app.spin(cmd, "Parsing "+args[0]+"...", func() error {
					var err error
					t, err = app.client().ParseTicket(cmd.Context(), args[0])
					return err
				})
				if err != nil {
					return err
				}
				printLine(cmd, formatter.FormatParsedTicket(t))
				return nil
			},
		},
	)

	return cmd
}
