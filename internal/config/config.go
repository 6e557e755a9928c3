// Package config loads planner settings from defaults, an optional YAML
// file, DAYPLAN_* environment variables and command-line flags, in that
// order of precedence (last wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/dayplan/internal/agentsvc"
	"github.com/alexanderramin/dayplan/internal/jira"
	"github.com/alexanderramin/dayplan/internal/llm"
)

// EnvPrefix prefixes every environment override, e.g. DAYPLAN_AGENT_URL.
const EnvPrefix = "DAYPLAN"

type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	DB       DBConfig       `mapstructure:"db" yaml:"db"`
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent"`
	Jira     JiraConfig     `mapstructure:"jira" yaml:"jira"`
	API      APIConfig      `mapstructure:"api" yaml:"api"`
	AgentSvc AgentSvcConfig `mapstructure:"agentsvc" yaml:"agentsvc"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type DBConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type AgentConfig struct {
	URL        string        `mapstructure:"url" yaml:"url"`
	FastModel  string        `mapstructure:"fast_model" yaml:"fast_model"`
	SmartModel string        `mapstructure:"smart_model" yaml:"smart_model"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
	LogCalls   bool          `mapstructure:"log_calls" yaml:"log_calls"`
}

type JiraConfig struct {
	BaseURL          string `mapstructure:"base_url" yaml:"base_url"`
	Email            string `mapstructure:"email" yaml:"email"`
	APIToken         string `mapstructure:"api_token" yaml:"api_token"`
	StoryPointsField string `mapstructure:"story_points_field" yaml:"story_points_field"`
}

type APIConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type AgentSvcConfig struct {
	Addr         string `mapstructure:"addr" yaml:"addr"`
	Backend      string `mapstructure:"backend" yaml:"backend"`
	ZaiBaseURL   string `mapstructure:"zai_base_url" yaml:"zai_base_url"`
	ZaiAPIKey    string `mapstructure:"zai_api_key" yaml:"zai_api_key"`
	GeminiAPIKey string `mapstructure:"gemini_api_key" yaml:"gemini_api_key"`
	DefaultModel string `mapstructure:"default_model" yaml:"default_model"`
}

type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level" yaml:"level"`
	// Format is text, json or auto (text on a terminal).
	Format string `mapstructure:"format" yaml:"format"`
}

var defaults = map[string]any{
	"server.addr":             ":3001",
	"db.path":                 "~/.dayplan/dayplan.db",
	"agent.url":               "http://localhost:3002",
	"agent.fast_model":        "glm-4.5-air",
	"agent.smart_model":       "glm-5",
	"agent.timeout":           "120s",
	"agent.log_calls":         true,
	"jira.base_url":           "",
	"jira.email":              "",
	"jira.api_token":          "",
	"jira.story_points_field": jira.DefaultStoryPointsField,
	"api.url":                 "http://localhost:3001/api",
	"agentsvc.addr":           ":3002",
	"agentsvc.backend":        "zai",
	"agentsvc.zai_base_url":   agentsvc.DefaultZaiBaseURL,
	"agentsvc.zai_api_key":    "",
	"agentsvc.gemini_api_key": "",
	"agentsvc.default_model":  "glm-5",
	"log.level":               "info",
	"log.format":              "auto",
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"addr":       "server.addr",
	"db":         "db.path",
	"agent-url":  "agent.url",
	"api-url":    "api.url",
	"log-level":  "log.level",
	"log-format": "log.format",
	"agent-addr": "agentsvc.addr",
	"backend":    "agentsvc.backend",
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds whichever of the known flags exist in fs.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads cfgFile, or the first of ./dayplan.yaml and
// $HOME/.dayplan/config.yaml that exists when cfgFile is empty.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	path, err := ExpandHome(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	cfg.DB.Path = path
	return &cfg, nil
}

func findConfigFile() string {
	candidates := []string{"dayplan.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".dayplan", "config.yaml"))
	}
	for _, c := range candidates {
		if st, err := os.Stat(c); err == nil && !st.IsDir() {
			return c
		}
	}
	return ""
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Agent.Timeout <= 0 {
		return fmt.Errorf("agent.timeout: must be positive")
	}
	switch c.AgentSvc.Backend {
	case "zai", "gemini":
	default:
		return fmt.Errorf("agentsvc.backend: unknown backend %q", c.AgentSvc.Backend)
	}
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// LLM returns the agent client configuration.
func (c *Config) LLM() llm.Config {
	out := llm.DefaultConfig()
	out.URL = c.Agent.URL
	out.FastModel = c.Agent.FastModel
	out.SmartModel = c.Agent.SmartModel
	out.Timeout = c.Agent.Timeout
	out.LogCalls = c.Agent.LogCalls
	return out
}

// JiraClient returns the Jira client configuration.
func (c *Config) JiraClient() jira.ClientConfig {
	return jira.ClientConfig{
		BaseURL:          c.Jira.BaseURL,
		Email:            c.Jira.Email,
		APIToken:         c.Jira.APIToken,
		StoryPointsField: c.Jira.StoryPointsField,
	}
}

// Backend returns the agent service backend selection.
func (c *Config) Backend() agentsvc.BackendConfig {
	return agentsvc.BackendConfig{
		Kind:         c.AgentSvc.Backend,
		ZaiBaseURL:   c.AgentSvc.ZaiBaseURL,
		ZaiAPIKey:    c.AgentSvc.ZaiAPIKey,
		GeminiAPIKey: c.AgentSvc.GeminiAPIKey,
	}
}

const secretMask = "********"

// Masked returns a copy with credentials replaced. Unset credentials stay
// empty so the output shows what is missing.
func (c Config) Masked() Config {
	for _, s := range []*string{&c.Jira.APIToken, &c.AgentSvc.ZaiAPIKey, &c.AgentSvc.GeminiAPIKey} {
		if *s != "" {
			*s = secretMask
		}
	}
	return c
}

// YAML renders the masked configuration.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c.Masked())
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(out), nil
}

// MarshalYAML writes the timeout as a duration string rather than
// nanoseconds.
func (a AgentConfig) MarshalYAML() (any, error) {
	return struct {
		URL        string `yaml:"url"`
		FastModel  string `yaml:"fast_model"`
		SmartModel string `yaml:"smart_model"`
		Timeout    string `yaml:"timeout"`
		LogCalls   bool   `yaml:"log_calls"`
	}{a.URL, a.FastModel, a.SmartModel, a.Timeout.String(), a.LogCalls}, nil
}
