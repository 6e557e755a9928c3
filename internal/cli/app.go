package cli

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/alexanderramin/dayplan/internal/api"
	"github.com/alexanderramin/dayplan/internal/apiclient"
	"github.com/alexanderramin/dayplan/internal/config"
	"github.com/alexanderramin/dayplan/internal/db"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/intelligence"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
	"github.com/alexanderramin/dayplan/internal/repository"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/alexanderramin/dayplan/internal/tui"
)

// Client is the planner API as the commands see it. *apiclient.Client
// implements it.
type Client interface {
	tui.Planner
	Health(ctx context.Context) error
	GetPlan(ctx context.Context, id string) (api.Plan, error)
	UpdatePlanStatus(ctx context.Context, id, status string) (api.Plan, error)
	GetTask(ctx context.Context, id string) (api.Task, error)
	ReplaceTasks(ctx context.Context, planID string, tasks []api.TaskInput) ([]api.Task, error)
	DeleteTask(ctx context.Context, id string) error
	LogWork(ctx context.Context, req api.LogWorkRequest) (api.WorkLog, error)
	ListWorkLogs(ctx context.Context, date string) ([]api.WorkLog, error)
	GetStandup(ctx context.Context, date string) (api.Standup, error)
	Chat(ctx context.Context, req api.ChatRequest) (intelligence.ChatReply, error)
	ParseTicket(ctx context.Context, key string) (domain.ParsedTicket, error)
	AnalyzeDescription(ctx context.Context, description string) (domain.TaskAnalysis, error)
	JiraTicket(ctx context.Context, key string) (jira.Issue, error)
}

var _ Client = (*apiclient.Client)(nil)

// App carries what every command needs. Config and Logger are filled in by
// the root command before any subcommand runs.
type App struct {
	Viper  *viper.Viper
	Config *config.Config
	Logger *slog.Logger

	// Client overrides the client built from api.url.
	Client Client

	// IsInteractive reports whether stdin and stdout are a terminal.
	IsInteractive func() bool
	Now           func() time.Time
}

func NewApp() *App {
	return &App{
		Viper: config.New(),
		IsInteractive: func() bool {
			return isTerminal(os.Stdin) && isTerminal(os.Stdout)
		},
		Now: time.Now,
	}
}

func (app *App) client() Client {
	if app.Client == nil {
		app.Client = apiclient.New(app.Config.API.URL, nil)
	}
	return app.Client
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *App) today() string {
	return app.now().Format(domain.DateLayout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// newLogger builds the root logger. The auto format picks text when w is
// a terminal and JSON otherwise.
func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	format := strings.ToLower(cfg.Format)
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && isTerminal(f) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// NewServices wires repositories, agent use cases and services over one
// database.
func NewServices(database *sql.DB, agent llm.AgentClient, issues intelligence.IssueSource, logger *slog.Logger) api.Services {
	observer := service.NewLogUseCaseObserver(logger)

	plans := repository.NewSQLitePlanRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	workLogs := repository.NewSQLiteWorkLogRepo(database)
	tickets := repository.NewSQLiteTicketRepo(database)
	standups := repository.NewSQLiteStandupRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	parser := intelligence.NewTicketParser(issues, agent)
	analyzer := intelligence.NewTaskAnalyzer(agent)

	return api.Services{
		Plans:    service.NewPlanService(plans, observer),
		Tasks:    service.NewTaskService(plans, tasks, uow, analyzer, parser, observer),
		WorkLogs: service.NewWorkLogService(workLogs, tasks, tickets, observer),
		Standups: service.NewStandupService(standups, workLogs, tasks, intelligence.NewStandupWriter(agent), observer),
		Planning: service.NewPlanningService(plans, tasks, intelligence.NewPlanningAdvisor(agent), observer),
		Assist:   service.NewAssistService(intelligence.NewAssistant(agent), parser, analyzer, issues, observer),
	}
}
