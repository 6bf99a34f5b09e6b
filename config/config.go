// Package config loads the service configuration from YAML with environment
// variable expansion. Defaults are usable out of the box: an in-memory
// profile store, the built-in agent graph and the scripted backend.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/voyagent/voyagent/core"
)

// Duration wraps time.Duration so YAML accepts "30m" style values.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// SessionConfig configures session lifecycle.
type SessionConfig struct {
	TTL    Duration `yaml:"ttl"`
	GCSpec string   `yaml:"gc_spec"` // cron expression
}

// RouterConfig configures the lexical router.
type RouterConfig struct {
	Threshold int `yaml:"threshold"`
}

// ExecutorConfig bounds the turn loop.
type ExecutorConfig struct {
	MaxHops      int      `yaml:"max_hops"`
	MaxRetries   int      `yaml:"max_retries"`
	RetryBackoff Duration `yaml:"retry_backoff"`
	CallTimeout  Duration `yaml:"call_timeout"`
}

// BackendConfig selects and configures the model provider.
type BackendConfig struct {
	Provider    string  `yaml:"provider"` // "anthropic", "openai" or "scripted"
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int64   `yaml:"max_tokens"`
}

// ProfileConfig configures the profile store.
type ProfileConfig struct {
	// Path to a SQLite database file; empty keeps profiles in memory.
	Path string `yaml:"path"`
	// Seeds is a YAML file of profiles loaded at startup.
	Seeds string `yaml:"seeds"`
}

// AgentsConfig points at the agent graph definition.
type AgentsConfig struct {
	// GraphFile is a YAML agent graph; empty uses the built-in graph.
	GraphFile string `yaml:"graph_file"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "text"
}

// Config is the root configuration document.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Session  SessionConfig  `yaml:"session"`
	Router   RouterConfig   `yaml:"router"`
	Executor ExecutorConfig `yaml:"executor"`
	Backend  BackendConfig  `yaml:"backend"`
	Profile  ProfileConfig  `yaml:"profile"`
	Agents   AgentsConfig   `yaml:"agents"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Session: SessionConfig{
			TTL:    Duration(30 * time.Minute),
			GCSpec: "*/5 * * * *",
		},
		Router:  RouterConfig{Threshold: 2},
		Executor: ExecutorConfig{
			MaxHops:      5,
			MaxRetries:   2,
			RetryBackoff: Duration(200 * time.Millisecond),
			CallTimeout:  Duration(60 * time.Second),
		},
		Backend: BackendConfig{
			Provider:    "scripted",
			Temperature: 0.7,
			MaxTokens:   4096,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}

// Load reads a YAML config file, expanding ${VAR} environment references,
// and overlays it on the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	expanded := os.ExpandEnv(string(raw))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Backend.Provider {
	case "anthropic", "openai", "scripted":
	default:
		return core.NewConfigurationError("unknown backend provider %q", c.Backend.Provider)
	}
	if c.Router.Threshold < 1 {
		return core.NewConfigurationError("router threshold must be at least 1, got %d", c.Router.Threshold)
	}
	if c.Executor.MaxHops < 1 {
		return core.NewConfigurationError("executor max_hops must be at least 1, got %d", c.Executor.MaxHops)
	}
	if c.Executor.MaxRetries < 0 {
		return core.NewConfigurationError("executor max_retries must not be negative")
	}
	if time.Duration(c.Session.TTL) <= 0 {
		return core.NewConfigurationError("session ttl must be positive")
	}
	return nil
}
