// Package voyagent provides a high-level façade over the conversation
// stack: the agent registry, session registry, lexical router, profile
// store, personalization builder and turn executor. Most applications
// interact with this package by:
//  1. Loading a config.Config (or starting from config.Default())
//  2. Creating an App via New()
//  3. Serving HTTP with Run(), or driving turns directly via Chat()
//
// All defaults are safe for local development: an in-memory profile store,
// the built-in agent graph and a scripted backend that needs no API key.
package voyagent

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"gopkg.in/yaml.v3"

	"github.com/voyagent/voyagent/backend"
	anthropicbackend "github.com/voyagent/voyagent/backend/anthropic"
	openaibackend "github.com/voyagent/voyagent/backend/openai"
	"github.com/voyagent/voyagent/config"
	"github.com/voyagent/voyagent/executor"
	"github.com/voyagent/voyagent/logging"
	"github.com/voyagent/voyagent/personalize"
	"github.com/voyagent/voyagent/profile"
	profilesqlite "github.com/voyagent/voyagent/profile/sqlite"
	"github.com/voyagent/voyagent/registry"
	"github.com/voyagent/voyagent/router"
	"github.com/voyagent/voyagent/server"
	"github.com/voyagent/voyagent/session"
	"github.com/voyagent/voyagent/tool"
)

// App aggregates the wired subsystems for one service instance.
type App struct {
	cfg      *config.Config
	logger   logging.Logger
	agents   *registry.Registry
	profiles profile.Store
	sessions *session.Registry
	executor *executor.Executor
	server   *server.Server

	closer io.Closer
}

// Options allows overriding wiring pieces, mainly for tests and embedding.
type Options struct {
	// Backend overrides the provider selected by the config.
	Backend backend.Backend
	// Profiles overrides the profile store selected by the config.
	Profiles profile.Store
	// Logger overrides the config-built logger.
	Logger logging.Logger
}

// New wires an App from configuration.
func New(cfg *config.Config, optFns ...func(o *Options)) (*App, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	}

	agents, err := loadAgents(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{cfg: cfg, logger: logger, agents: agents}

	app.profiles = opts.Profiles
	if app.profiles == nil {
		if app.profiles, err = openProfiles(cfg); err != nil {
			return nil, err
		}
	}
	if c, ok := app.profiles.(io.Closer); ok && opts.Profiles == nil {
		app.closer = c
	}
	if err := seedProfiles(app.profiles, cfg.Profile.Seeds); err != nil {
		return nil, err
	}

	be := opts.Backend
	if be == nil {
		if be, err = buildBackend(cfg); err != nil {
			return nil, err
		}
	}

	tools, err := tool.DefaultSet()
	if err != nil {
		return nil, err
	}

	app.sessions = session.NewRegistry(agents, func(o *session.RegistryOptions) {
		o.TTL = time.Duration(cfg.Session.TTL)
		o.Logger = logger
	})

	app.executor = executor.New(
		agents,
		app.sessions,
		router.New(agents, func(o *router.Options) {
			o.Threshold = cfg.Router.Threshold
			o.Logger = logger
		}),
		personalize.NewBuilder(app.profiles, func(o *personalize.BuilderOptions) {
			o.Logger = logger
		}),
		be,
		tools,
		app.profiles,
		func(o *executor.Options) {
			o.MaxHops = cfg.Executor.MaxHops
			o.MaxRetries = cfg.Executor.MaxRetries
			o.RetryBackoff = time.Duration(cfg.Executor.RetryBackoff)
			o.CallTimeout = time.Duration(cfg.Executor.CallTimeout)
			o.Logger = logger
		},
	)

	app.server = server.New(cfg, app.executor, app.profiles, app.sessions, logger)
	logger.Info("app wired",
		"agents", len(agents.All()), "backend", be.Info().Provider, "addr", cfg.Server.Addr)
	return app, nil
}

// Chat runs one conversation turn directly, bypassing HTTP.
func (a *App) Chat(ctx context.Context, in executor.Input) (*executor.Result, error) {
	return a.executor.RunTurn(ctx, in)
}

// Profiles exposes the profile store.
func (a *App) Profiles() profile.Store { return a.profiles }

// Run serves HTTP until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	return a.server.Run(ctx)
}

// Close releases durable resources.
func (a *App) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func loadAgents(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Agents.GraphFile != "" {
		return registry.Load(cfg.Agents.GraphFile)
	}
	return registry.DefaultGraph()
}

func openProfiles(cfg *config.Config) (profile.Store, error) {
	if cfg.Profile.Path == "" {
		return profile.NewInMemoryStore(), nil
	}
	return profilesqlite.Open(cfg.Profile.Path)
}

func buildBackend(cfg *config.Config) (backend.Backend, error) {
	switch cfg.Backend.Provider {
	case "anthropic":
		return anthropicbackend.New(func(o *anthropicbackend.Options) {
			if cfg.Backend.Model != "" {
				o.Model = anthropic.Model(cfg.Backend.Model)
			}
			if cfg.Backend.Temperature > 0 {
				o.Temperature = cfg.Backend.Temperature
			}
			if cfg.Backend.MaxTokens > 0 {
				o.MaxTokens = cfg.Backend.MaxTokens
			}
			o.APIKey = cfg.Backend.APIKey
		}), nil
	case "openai":
		return openaibackend.New(func(o *openaibackend.Options) {
			if cfg.Backend.Model != "" {
				o.Model = cfg.Backend.Model
			}
			if cfg.Backend.Temperature > 0 {
				o.Temperature = cfg.Backend.Temperature
			}
			if cfg.Backend.MaxTokens > 0 {
				o.MaxCompletionTokens = cfg.Backend.MaxTokens
			}
		}), nil
	case "scripted":
		return backend.NewScriptedBackend(), nil
	default:
		return nil, fmt.Errorf("unknown backend provider %q", cfg.Backend.Provider)
	}
}

// seedProfiles imports a YAML profile list at startup, upserting by user id.
func seedProfiles(store profile.Store, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seeds: %w", err)
	}
	var seeds []*profile.UserProfile
	if err := yaml.Unmarshal(raw, &seeds); err != nil {
		return fmt.Errorf("parse seeds: %w", err)
	}
	now := time.Now().UTC()
	for _, p := range seeds {
		if p.UserID == "" {
			return fmt.Errorf("seed profile without user_id")
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
		p.ProfileComplete = p.Complete()
		if err := store.Put(context.Background(), p); err != nil {
			return fmt.Errorf("seed profile %s: %w", p.UserID, err)
		}
	}
	return nil
}
