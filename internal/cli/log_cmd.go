package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record and list time spent",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogListCmd(app),
	)

	return cmd
}

func newLogAddCmd(app *App) *cobra.Command {
	var minutes int
	var date, task, ticket string

	cmd := &cobra.Command{
		Use:   "add DESCRIPTION...",
		Short: "Log work against a task or ticket",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			if date == "" {
				date = app.today()
			}
			if task != "" {
				id, err := resolveTaskID(ctx, c, task)
				if err != nil {
					return err
				}
				task = id
			}

			wl, err := c.LogWork(ctx, api.LogWorkRequest{
				Date:            date,
				DurationMinutes: minutes,
				Description:     strings.Join(args, " "),
				TaskID:          task,
				TicketID:        strings.ToUpper(ticket),
			})
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success(fmt.Sprintf("Logged %s on %s", formatter.FormatMinutes(wl.DurationMinutes), wl.Date)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Duration in minutes")
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&task, "task", "", "Task ID or prefix")
	cmd.Flags().StringVar(&ticket, "ticket", "", "Jira ticket key")
	_ = cmd.MarkFlagRequired("minutes")
	cmd.MarkFlagsMutuallyExclusive("task", "ticket")

	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the work logged on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date == "" {
				date = app.today()
			}
			logs, err := app.client().ListWorkLogs(cmd.Context(), date)
			if err != nil {
				return err
			}
			if len(logs) == 0 {
				printLine(cmd, "No work logged on "+date+".")
				return nil
			}
			printLine(cmd, formatter.FormatWorkLogs(logs))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")

	return cmd
}
