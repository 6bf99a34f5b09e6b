package core

import (
	"sync"
	"time"
)

// Session is a conversational container tracking the active agent, an
// ordered append-only turn log and typed scratch state. It is safe for
// concurrent access.
//
// Contract:
//   - State mutations update the Updated timestamp
//   - Turns returns a defensive copy to avoid external mutation
//   - ApplyStateDelta validates keys against the well-known set
//   - Clone performs deep copies for safe divergence
type Session struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id,omitempty"`
	ActiveAgent string           `json:"active_agent"`
	TurnLog     []Turn           `json:"turns"`
	State       map[StateKey]any `json:"state"`
	Created     time.Time        `json:"created"`
	Updated     time.Time        `json:"updated"`
	mu          sync.RWMutex
}

// NewSession creates a session bound to an optional user, starting at the
// given root agent.
func NewSession(id, userID, rootAgent string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          id,
		UserID:      userID,
		ActiveAgent: rootAgent,
		TurnLog:     []Turn{},
		State:       map[StateKey]any{},
		Created:     now,
		Updated:     now,
	}
}

// SetActiveAgent points the session at a new agent. Target validation is the
// session registry's responsibility.
func (s *Session) SetActiveAgent(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ActiveAgent = agentID
	s.Updated = time.Now().UTC()
}

// ActiveAgentID returns the currently active agent id.
func (s *Session) ActiveAgentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ActiveAgent
}

// AddTurn appends a turn to the log updating the Updated timestamp.
func (s *Session) AddTurn(t Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TurnLog = append(s.TurnLog, t)
	s.Updated = time.Now().UTC()
}

// Turns returns a defensive copy of the full turn log.
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := make([]Turn, len(s.TurnLog))
	copy(turns, s.TurnLog)
	return turns
}

// StateValue returns the value and existence flag for a scratch key.
func (s *Session) StateValue(key StateKey) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.State[key]
	return v, ok
}

// StateSnapshot returns a shallow copy of the scratch state map.
func (s *Session) StateSnapshot() map[StateKey]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[StateKey]any, len(s.State))
	for k, v := range s.State {
		snap[k] = v
	}
	return snap
}

// ApplyStateDelta merges the delta into scratch state, last-write-wins per
// key. Unknown keys reject the whole delta.
func (s *Session) ApplyStateDelta(delta StateDelta) error {
	if err := delta.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range delta {
		s.State[k] = v
	}
	s.Updated = time.Now().UTC()
	return nil
}

// IdleSince reports whether the session has seen no activity since cutoff.
func (s *Session) IdleSince(cutoff time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Updated.Before(cutoff)
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{
		ID:          s.ID,
		UserID:      s.UserID,
		ActiveAgent: s.ActiveAgent,
		TurnLog:     make([]Turn, len(s.TurnLog)),
		State:       make(map[StateKey]any, len(s.State)),
		Created:     s.Created,
		Updated:     s.Updated,
	}
	copy(clone.TurnLog, s.TurnLog)
	for k, v := range s.State {
		clone.State[k] = v
	}
	return clone
}
