package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
)

func newAICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ai",
		Short: "Talk to the agent directly",
	}

	cmd.AddCommand(
		newAIChatCmd(app),
		newAIAnalyzeCmd(app),
	)

	return cmd
}

func newAIChatCmd(app *App) *cobra.Command {
	var agentType, tier string
	var raw bool

	cmd := &cobra.Command{
		Use:   "chat MESSAGE...",
		Short: "Send a message to an agent persona (project, frontend, planner, ultraworks)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var reply intelligence.ChatReply
			err := app.spin(cmd, "Waiting for the agent...", func() error {
				var err error
				reply, err = app.client().Chat(cmd.Context(), api.ChatRequest{
					Message:   strings.Join(args, " "),
					AgentType: agentType,
					Tier:      tier,
				})
				return err
			})
			if err != nil {
				return err
			}
			printMarkdown(cmd, raw, reply.Response)
			if !raw {
				printLine(cmd, formatter.Dim(fmt.Sprintf("%s · %s", reply.AgentType, reply.Model)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agentType, "agent", "", "Agent persona (default planner)")
	cmd.Flags().StringVar(&tier, "tier", "", "Model tier: fast or smart")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the reply unrendered")

	return cmd
}

func newAIAnalyzeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze DESCRIPTION...",
		Short: "Propose a title and priority for a task without saving it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var a domain.TaskAnalysis
			err := app.spin(cmd, "Analyzing...", func() error {
				var err error
				a, err = app.client().AnalyzeDescription(cmd.Context(), strings.Join(args, " "))
				return err
			})
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Bold(a.Title)+"  "+formatter.PriorityBadge(string(a.Priority)))
			if a.Description != "" {
				printLine(cmd, formatter.Dim(a.Description))
			}
			return nil
		},
	}
}
