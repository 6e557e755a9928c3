package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/dayplan/internal/config"
)

// NewRootCmd creates the top-level "dayplan" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "dayplan",
		Short:         "Daily work planner: plans, tasks, standups and agent advice",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(cmd, cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default ./dayplan.yaml or ~/.dayplan/config.yaml)")
	pf.String("api-url", "", "Planner API base URL")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: text, json, auto")

	root.AddCommand(
		newServeCmd(app),
		newAgentCmd(app),
		newDashboardCmd(app),
		newPlanCmd(app),
		newTaskCmd(app),
		newLogCmd(app),
		newStandupCmd(app),
		newJiraCmd(app),
		newAICmd(app),
		newConfigCmd(app),
	)

	return root
}

func (app *App) load(cmd *cobra.Command, cfgFile string) error {
	if app.Viper == nil {
		app.Viper = config.New()
	}
	if err := config.BindFlags(app.Viper, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(app.Viper, cfgFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	app.Config = cfg
	app.Logger = newLogger(cfg.Log, cmd.ErrOrStderr())
	return nil
}
