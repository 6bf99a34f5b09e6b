// Package backend defines the boundary between the turn executor and the
// language model providers. A Backend receives one normalized request per
// hop and returns the model's text, any tool calls it made and an optional
// transfer request; provider specifics live in the sub-packages.
package backend

import (
	"context"
	"encoding/json"

	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/tool"
)

// Message is one prior exchange replayed to the model as history.
type Message struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Request is the normalized model input for a single hop.
type Request struct {
	AgentID      string                `json:"agent_id"`
	Instructions string                `json:"instructions"`
	History      []Message             `json:"history,omitempty"`
	Message      string                `json:"message"`
	Tools        []tool.Descriptor     `json:"tools,omitempty"`
	State        map[core.StateKey]any `json:"state,omitempty"`
}

// ToolCall is a function call the model requested.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// TransferRequest asks the executor to hand the turn to another agent.
type TransferRequest struct {
	AgentID string `json:"agent_id"`
	Reason  string `json:"reason,omitempty"`
}

// Response is the model output for one hop.
type Response struct {
	Text      string           `json:"text"`
	ToolCalls []ToolCall       `json:"tool_calls,omitempty"`
	Transfer  *TransferRequest `json:"transfer,omitempty"`
}

// Info describes a backend implementation.
type Info struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// Backend generates one completion per call. Implementations must honor ctx
// cancellation and be safe for concurrent use.
type Backend interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Info() Info
}
