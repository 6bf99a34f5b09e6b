package core

import "time"

// Turn is one request/response exchange within a session. Turns are
// append-only: once recorded in the session log they are never mutated.
// Failed turns are recorded too (with an error marker) so session
// continuity survives backend outages.
type Turn struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response,omitempty"`
	Events    []Event   `json:"events"`
	Failed    bool      `json:"failed,omitempty"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTurn creates a turn record for the given exchange.
func NewTurn(agentID, message string) Turn {
	return Turn{
		ID:        NewID(),
		AgentID:   agentID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
