// Package api provides the JSON HTTP API of the planner.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/dayplan/internal/service"
)

// Services are the use cases the API exposes.
type Services struct {
	Plans    service.PlanService
	Tasks    service.TaskService
	WorkLogs service.WorkLogService
	Standups service.StandupService
	Planning service.PlanningService
	Assist   service.AssistService
}

type Config struct {
	Addr   string
	Logger *slog.Logger
	// ShutdownTimeout bounds how long in-flight requests may run after the
	// serve context is cancelled.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":3001",
		Logger:          slog.Default(),
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server is the planner API server.
type Server struct {
	cfg    Config
	svc    Services
	mux    *http.ServeMux
	logger *slog.Logger
}

// New creates the server and registers every route.
func New(cfg Config, svc Services) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		mux:    http.NewServeMux(),
		logger: cfg.Logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// Plans
	s.mux.HandleFunc("POST /api/plans", s.handleCreatePlan)
	s.mux.HandleFunc("GET /api/plans", s.handleListPlans)
	s.mux.HandleFunc("GET /api/plans/{id}", s.handleGetPlan)
	s.mux.HandleFunc("PATCH /api/plans/{id}", s.handleUpdatePlan)

	// Tasks
	s.mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	s.mux.HandleFunc("POST /api/tasks/analyze", s.handleAnalyzeTask)
	s.mux.HandleFunc("POST /api/tasks/from-jira", s.handleImportTask)
	s.mux.HandleFunc("POST /api/tasks/bulk", s.handleBulkTasks)
	s.mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	s.mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleDeleteTask)

	// Work logs
	s.mux.HandleFunc("POST /api/worklogs", s.handleLogWork)
	s.mux.HandleFunc("GET /api/worklogs", s.handleListWorkLogs)

	// Standups
	s.mux.HandleFunc("POST /api/standup/generate", s.handleGenerateStandup)
	s.mux.HandleFunc("POST /api/standup/generate-interactive", s.handleGenerateInteractiveStandup)
	s.mux.HandleFunc("GET /api/standup/{date}", s.handleGetStandup)

	// Planning
	s.mux.HandleFunc("POST /api/planning/recommend-today", s.handleRecommendToday)
	s.mux.HandleFunc("POST /api/planning/task-guidance", s.handleTaskGuidance)

	// Agent and issue-tracker pass-throughs
	s.mux.HandleFunc("POST /api/ai/chat", s.handleChat)
	s.mux.HandleFunc("POST /api/ai/parse-ticket", s.handleParseTicket)
	s.mux.HandleFunc("POST /api/ai/analyze-task", s.handleAnalyzeDescription)
	s.mux.HandleFunc("GET /api/jira/ticket/{key}", s.handleGetJiraTicket)
}

// Handler returns the routed handler wrapped in request logging and panic
// recovery.
func (s *Server) Handler() http.Handler {
	return s.recoverPanics(s.logRequests(s.mux))
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("API server stopped")
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, HealthResponse{Status: "ok"})
}
