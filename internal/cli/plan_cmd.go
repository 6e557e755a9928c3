package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/tui"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plans",
	}

	cmd.AddCommand(
		newPlanCreateCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanStatusCmd(app),
		newPlanTodayCmd(app),
	)

	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var name, start, end, status string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if !app.interactive() {
					return fmt.Errorf("--name is required")
				}
				in := tui.PlanInput{StartDate: start, EndDate: end}
				if err := tui.PlanForm(&in).Run(); err != nil {
					return err
				}
				name, start, end = in.Name, in.StartDate, in.EndDate
			}

			p, err := app.client().CreatePlan(cmd.Context(), api.CreatePlanRequest{
				Name:      strings.TrimSpace(name),
				StartDate: strings.TrimSpace(start),
				EndDate:   strings.TrimSpace(end),
				Status:    status,
			})
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success(fmt.Sprintf("Created plan %s (%s)", p.Name, p.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Plan name (prompted when omitted on a terminal)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default active)")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List plans, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.client().ListPlans(cmd.Context())
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				printLine(cmd, "No plans found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans))
			return nil
		},
	}
}

func newPlanShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAN",
		Short: "Show a plan and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			id, err := resolvePlanID(ctx, c, args[0])
			if err != nil {
				return err
			}
			p, err := c.GetPlan(ctx, id)
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(ctx, id)
			if err != nil {
				return err
			}

			printLine(cmd, formatter.FormatPlan(p))
			printLine(cmd, "")
			if len(tasks) == 0 {
				printLine(cmd, formatter.Dim("No tasks."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}
}

func newPlanStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status PLAN STATUS",
		Short: "Set a plan's status (active, completed, archived)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			id, err := resolvePlanID(ctx, c, args[0])
			if err != nil {
				return err
			}
			p, err := c.UpdatePlanStatus(ctx, id, args[1])
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success(fmt.Sprintf("%s is now %s", p.Name, p.Status)))
			return nil
		},
	}
}

func newPlanTodayCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "today [PLAN]",
		Short: "Ask the agent which tasks to work on today",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			id, err := planFlag(ctx, c, input)
			if err != nil {
				return err
			}

			var text string
			err = app.spin(cmd, "Planning your day...", func() error {
				text, err = c.RecommendToday(ctx, api.RecommendRequest{PlanID: id})
				return err
			})
			if err != nil {
				return err
			}
			printMarkdown(cmd, raw, text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the agent's markdown unrendered")

	return cmd
}
