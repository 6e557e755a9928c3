package llm

import (
	"context"
	"log/slog"
)

// CallEvent records metadata about a single agent call.
type CallEvent struct {
	Task      TaskType
	Tier      Tier
	Model     string
	Endpoint  string
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about agent calls.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver logs every call through slog.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	level := slog.LevelInfo
	if !e.Success {
		level = slog.LevelWarn
	}
	o.logger.LogAttrs(context.Background(), level, "agent_call",
		slog.String("task", string(e.Task)),
		slog.String("tier", string(e.Tier)),
		slog.String("model", e.Model),
		slog.String("endpoint", e.Endpoint),
		slog.Int64("latency_ms", e.LatencyMs),
		slog.Bool("success", e.Success),
		slog.String("error_code", e.ErrorCode),
	)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
