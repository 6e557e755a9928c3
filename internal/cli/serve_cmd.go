package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/dayplan/internal/agentsvc"
	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
)

func newServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planner API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, app)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :3001)")
	cmd.Flags().String("db", "", "SQLite database path")
	cmd.Flags().String("agent-url", "", "Agent service base URL")

	return cmd
}

func runServe(ctx context.Context, app *App) error {
	cfg, logger := app.Config, app.Logger

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database open", "path", cfg.DB.Path)

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.Agent.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	agent := llm.NewAgentClient(cfg.LLM(), observer)
	defer agent.Close()

	srv := api.New(api.Config{Addr: cfg.Server.Addr, Logger: logger},
		NewServices(database, agent, issueSource(app), logger))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(ctx)
	})
	g.Go(func() error {
		// The agent service may start after the API; only warn.
		hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := agent.Health(hctx); err != nil && ctx.Err() == nil {
			logger.Warn("agent service not reachable", "url", cfg.Agent.URL, "error", err)
		}
		return nil
	})
	return g.Wait()
}

func issueSource(app *App) intelligence.IssueSource {
	client, err := jira.NewClient(app.Config.JiraClient())
	if err != nil {
		app.Logger.Warn("jira disabled", "error", err)
		return jira.Unconfigured{}
	}
	return client
}

func newAgentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run the agent service in front of the model vendor",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := app.Config
			backend, err := agentsvc.NewBackend(ctx, cfg.Backend())
			if err != nil {
				return err
			}
			srv := agentsvc.NewServer(agentsvc.Config{
				Addr:         cfg.AgentSvc.Addr,
				DefaultModel: cfg.AgentSvc.DefaultModel,
				Logger:       app.Logger,
			}, backend)

			app.Logger.Info("model backend selected", "backend", backend.Name(), "default_model", cfg.AgentSvc.DefaultModel)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("agent-addr", "", "Listen address (default :3002)")
	cmd.Flags().String("backend", "", "Model backend: zai or gemini")

	return cmd
}
