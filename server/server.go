// Package server exposes the HTTP surface: the chat endpoint, profile CRUD,
// health and Prometheus metrics. It also owns the background session GC.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/voyagent/voyagent/config"
	"github.com/voyagent/voyagent/executor"
	"github.com/voyagent/voyagent/logging"
	"github.com/voyagent/voyagent/metrics"
	"github.com/voyagent/voyagent/profile"
	"github.com/voyagent/voyagent/session"
)

// Server binds the executor and the profile store to HTTP.
type Server struct {
	cfg      *config.Config
	executor *executor.Executor
	profiles profile.Store
	sessions *session.Registry
	logger   logging.Logger
}

// New creates a Server.
func New(
	cfg *config.Config,
	exec *executor.Executor,
	profiles profile.Store,
	sessions *session.Registry,
	logger logging.Logger,
) *Server {
	return &Server{
		cfg:      cfg,
		executor: exec,
		profiles: profiles,
		sessions: sessions,
		logger:   logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// Run serves HTTP until ctx is canceled, running the session GC on the
// configured cron schedule. Shutdown drains in-flight requests up to the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Server.Addr,
		Handler: s.Handler(),
	}

	sched := cron.New()
	if _, err := sched.AddFunc(s.cfg.Session.GCSpec, s.collectSessions); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("http server listening", "addr", s.cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), time.Duration(s.cfg.Server.ShutdownTimeout))
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// collectSessions is the scheduled idle-session sweep.
func (s *Server) collectSessions() {
	evicted := s.sessions.GC(time.Now().UTC())
	if evicted > 0 {
		metrics.SessionsEvictedTotal.Add(float64(evicted))
	}
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
}
