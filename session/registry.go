package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/logging"
	"github.com/voyagent/voyagent/registry"
)

// DefaultTTL is how long a session may sit idle before GC evicts it.
const DefaultTTL = 30 * time.Minute

// Registry is the in-memory home of live sessions. Sessions are created on
// first use, always starting at the agent graph's root, and evicted after
// sitting idle past the TTL. All methods are safe for concurrent use; the
// returned *core.Session is the live object, itself safe for concurrent
// access.
type Registry struct {
	agents *registry.Registry
	ttl    time.Duration
	logger logging.Logger
	locks  *Locker

	mu       sync.RWMutex
	sessions map[string]*core.Session
}

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	TTL    time.Duration
	Logger logging.Logger
}

// NewRegistry creates a session registry bound to the given agent graph.
func NewRegistry(agents *registry.Registry, optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{TTL: DefaultTTL, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		agents:   agents,
		ttl:      opts.TTL,
		logger:   opts.Logger,
		locks:    NewLocker(),
		sessions: make(map[string]*core.Session),
	}
}

// Lock takes the per-session turn lock, blocking until it is available or
// ctx is done. The returned release func must be invoked exactly once. The
// lock lives with the registry so eviction also drops the slot.
func (r *Registry) Lock(ctx context.Context, sessionID string) (func(), error) {
	return r.locks.Acquire(ctx, sessionID)
}

// GetOrCreate returns the session with the given id, creating it at the root
// agent if absent. The created flag reports whether this call created it.
// Concurrent calls for the same id converge on a single session; the userID
// of the winning creator sticks.
func (r *Registry) GetOrCreate(sessionID, userID string) (*core.Session, bool) {
	r.mu.RLock()
	if s, ok := r.sessions[sessionID]; ok {
		r.mu.RUnlock()
		return s, false
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s, false
	}
	s := core.NewSession(sessionID, userID, r.agents.Root().ID)
	r.sessions[sessionID] = s
	r.logger.Debug("session created", "session_id", sessionID, "user_id", userID)
	return s, true
}

// Get returns an existing session or core.ErrNotFound.
func (r *Registry) Get(sessionID string) (*core.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %q: %w", sessionID, core.ErrNotFound)
	}
	return s, nil
}

// SetActiveAgent repoints a session at another agent after checking the
// target exists in the graph.
func (r *Registry) SetActiveAgent(sessionID, agentID string) error {
	if !r.agents.Has(agentID) {
		return fmt.Errorf("agent %q: %w", agentID, core.ErrUnknownAgent)
	}
	s, err := r.Get(sessionID)
	if err != nil {
		return err
	}
	s.SetActiveAgent(agentID)
	return nil
}

// Evict removes a session, reporting whether it existed.
func (r *Registry) Evict(sessionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[sessionID]; !ok {
		return false
	}
	delete(r.sessions, sessionID)
	r.locks.Forget(sessionID)
	return true
}

// GC evicts every session idle since now minus the TTL and returns how many
// were removed.
func (r *Registry) GC(now time.Time) int {
	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, s := range r.sessions {
		if s.IdleSince(cutoff) {
			delete(r.sessions, id)
			r.locks.Forget(id)
			evicted++
		}
	}
	if evicted > 0 {
		r.logger.Info("session gc", "evicted", evicted, "remaining", len(r.sessions))
	}
	return evicted
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
