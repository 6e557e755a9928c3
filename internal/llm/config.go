package llm

import (
	"fmt"
	"time"
)

// Tier selects how capable (and how slow) a model the agent should use.
type Tier string

const (
	TierFast  Tier = "fast"
	TierSmart Tier = "smart"
)

func (t Tier) Valid() bool {
	return t == TierFast || t == TierSmart
}

// ParseTier accepts "fast" or "smart"; the empty string yields def.
func ParseTier(s string, def Tier) (Tier, error) {
	if s == "" {
		return def, nil
	}
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown model tier %q (want fast or smart)", s)
	}
	return t, nil
}

// TaskType identifies what an agent call is for. It picks sampling
// defaults and labels observer events.
type TaskType string

const (
	TaskTicketParse  TaskType = "ticket_parse"
	TaskTaskAnalysis TaskType = "task_analysis"
	TaskStandup      TaskType = "standup"
	TaskPlanning     TaskType = "planning"
	TaskGuidance     TaskType = "guidance"
	TaskChat         TaskType = "chat"
)

// TaskConfig holds per-task defaults.
type TaskConfig struct {
	Tier        Tier
	Temperature float64
	MaxTokens   int
	Thinking    bool
}

// Config configures the agent client.
type Config struct {
	URL        string
	FastModel  string
	SmartModel string
	Timeout    time.Duration
	LogCalls   bool
	Tasks      map[TaskType]TaskConfig
}

func DefaultConfig() Config {
	return Config{
		URL:        "http://localhost:3002",
		FastModel:  "glm-4.5-air",
		SmartModel: "glm-5",
		Timeout:    120 * time.Second,
		Tasks: map[TaskType]TaskConfig{
			TaskTicketParse:  {Tier: TierFast, Temperature: 0.2, MaxTokens: 2048},
			TaskTaskAnalysis: {Tier: TierFast, Temperature: 0.2, MaxTokens: 1024},
			TaskStandup:      {Tier: TierSmart, Temperature: 0.7, MaxTokens: 1024, Thinking: true},
			TaskPlanning:     {Tier: TierSmart, Temperature: 0.5, MaxTokens: 2048, Thinking: true},
			TaskGuidance:     {Tier: TierSmart, Temperature: 0.5, MaxTokens: 2048, Thinking: true},
			TaskChat:         {Tier: TierSmart, Temperature: 0.7, MaxTokens: 4096, Thinking: true},
		},
	}
}

// Model resolves a tier to the configured model name. Unknown tiers fall
// back to the smart model.
func (c Config) Model(t Tier) string {
	if t == TierFast {
		return c.FastModel
	}
	return c.SmartModel
}

// Task returns the defaults for task, or chat defaults when unset.
func (c Config) Task(task TaskType) TaskConfig {
	if tc, ok := c.Tasks[task]; ok {
		return tc
	}
	if tc, ok := c.Tasks[TaskChat]; ok {
		return tc
	}
	return TaskConfig{Tier: TierSmart, Temperature: 0.7, MaxTokens: 4096}
}
