package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the tasks of a plan",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskShowCmd(app),
		newTaskAddCmd(app),
		newTaskImportCmd(app),
		newTaskUpdateCmd(app),
		newTaskDeleteCmd(app),
		newTaskBulkCmd(app),
		newTaskGuideCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			planID, err := planFlag(ctx, c, plan)
			if err != nil {
				return err
			}
			tasks, err := c.ListTasks(ctx, planID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				printLine(cmd, "No tasks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID, ID prefix or name (default: the only active plan)")

	return cmd
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TASK",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			id, err := resolveTaskID(ctx, c, args[0])
			if err != nil {
				return err
			}
			t, err := c.GetTask(ctx, id)
			if err != nil {
				return err
			}
			printLine(cmd, formatter.FormatTask(t))
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "add DESCRIPTION...",
		Short: "Add a task from a free-text description; the agent proposes title and priority",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			planID, err := planFlag(ctx, c, plan)
			if err != nil {
				return err
			}

			var t api.Task
			err = app.spin(cmd, "Analyzing task...", func() error {
				t, err = c.AnalyzeTask(ctx, planID, strings.Join(args, " "))
				return err
			})
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success(fmt.Sprintf("Added %s %s", formatter.Bold(t.Title), formatter.PriorityBadge(t.Priority))))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID, ID prefix or name (default: the only active plan)")

	return cmd
}

func newTaskImportCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "import TICKET",
		Short: "Import a Jira ticket as a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			planID, err := planFlag(ctx, c, plan)
			if err != nil {
				return err
			}

			var t api.Task
			err = app.spin(cmd, "Fetching and parsing "+args[0]+"...", func() error {
				t, err = c.ImportTask(ctx, planID, args[0])
				return err
			})
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success(fmt.Sprintf("Imported [%s] %s", t.JiraKey, t.Title)))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID, ID prefix or name (default: the only active plan)")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var title, description, priority, status string

	cmd := &cobra.Command{
		Use:   "update TASK",
		Short: "Update title, description, priority or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req api.UpdateTaskRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("priority") {
				req.Priority = &priority
			}
			if flags.Changed("status") {
				req.Status = &status
			}

			ctx, c := cmd.Context(), app.client()
			id, err := resolveTaskID(ctx, c, args[0])
			if err != nil {
				return err
			}
			t, err := c.UpdateTask(ctx, id, req)
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success("Updated "+t.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&priority, "priority", "", "High, Medium or Low")
	cmd.Flags().StringVar(&status, "status", "", "todo, in_progress, done or blocked")
	cmd.MarkFlagsOneRequired("title", "description", "priority", "status")

	return cmd
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TASK",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			id, err := resolveTaskID(ctx, c, args[0])
			if err != nil {
				return err
			}
			if err := c.DeleteTask(ctx, id); err != nil {
				return err
			}
			printLine(cmd, formatter.Success("Deleted task "+id))
			return nil
		},
	}
}

func newTaskBulkCmd(app *App) *cobra.Command {
	var plan string

	cmd := &cobra.Command{
		Use:   "bulk FILE",
		Short: "Replace all tasks of a plan with the list in FILE (JSON or YAML, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := readTaskInputs(cmd, args[0])
			if err != nil {
				return err
			}

			ctx, c := cmd.Context(), app.client()
			planID, err := planFlag(ctx, c, plan)
			if err != nil {
				return err
			}
			saved, err := c.ReplaceTasks(ctx, planID, tasks)
			if err != nil {
				return err
			}
			printLine(cmd, formatter.Success(fmt.Sprintf("Plan now has %d tasks", len(saved))))
			return nil
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID, ID prefix or name (default: the only active plan)")

	return cmd
}

// readTaskInputs decodes a list of tasks. YAML is a superset of JSON, so
// both go through the YAML decoder and then onto the JSON field names.
func readTaskInputs(cmd *cobra.Command, path string) ([]api.TaskInput, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing tasks: %w", err)
	}
	if m, ok := doc.(map[string]any); ok {
		list, found := m["tasks"]
		if !found {
			return nil, fmt.Errorf("parsing tasks: expected a list or a \"tasks\" key")
		}
		doc = list
	}
	if doc == nil {
		return []api.TaskInput{}, nil
	}

	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing tasks: %w", err)
	}
	var tasks []api.TaskInput
	if err := json.Unmarshal(asJSON, &tasks); err != nil {
		return nil, fmt.Errorf("parsing tasks: expected a list of tasks: %w", err)
	}
	return tasks, nil
}

func newTaskGuideCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "guide TASK",
		Short: "Ask the agent how to approach a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, c := cmd.Context(), app.client()
			id, err := resolveTaskID(ctx, c, args[0])
			if err != nil {
				return err
			}

			var text string
			err = app.spin(cmd, "Thinking...", func() error {
				text, err = c.TaskGuidance(ctx, api.GuidanceRequest{TaskID: id})
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
