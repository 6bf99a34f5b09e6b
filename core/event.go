package core

import (
	"time"

	"github.com/google/uuid"
)

// EventType categorizes entries in a turn's event trace.
type EventType string

const (
	// EventUserMessage is the inbound user message that started the turn.
	EventUserMessage EventType = "user_message"
	// EventAgentResponse is the final assistant text produced by the active agent.
	EventAgentResponse EventType = "agent_response"
	// EventTransfer records a routing decision moving the active agent.
	EventTransfer EventType = "transfer"
	// EventToolCall records a tool invocation requested by the backend.
	EventToolCall EventType = "tool_call"
	// EventToolResult records the outcome of a previously emitted tool call.
	EventToolResult EventType = "tool_result"
	// EventError marks a failed turn (backend exhaustion, routing loop).
	EventError EventType = "error"
)

// Transfer describes a handoff between two agents in the registry tree.
type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Reason string `json:"reason,omitempty"`
}

// ToolInvocation carries the request and, for result events, the outcome of
// a tool call.
type ToolInvocation struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Arguments string `json:"arguments,omitempty"`
	Result    any    `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Event is a single entry in a turn's event trace. After emission it should
// be treated as immutable. Author is the agent id that produced the event,
// or "user" / "system" for boundary events.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	Author    string          `json:"author"`
	Timestamp time.Time       `json:"timestamp"`
	Text      string          `json:"text,omitempty"`
	Transfer  *Transfer       `json:"transfer,omitempty"`
	Tool      *ToolInvocation `json:"tool,omitempty"`
	ErrorKind string          `json:"error_kind,omitempty"`
}

// NewID generates a unique identifier for events, turns and sessions.
func NewID() string { return uuid.NewString() }

func newEvent(t EventType, author string) Event {
	return Event{ID: NewID(), Type: t, Author: author, Timestamp: time.Now().UTC()}
}

// NewUserMessageEvent creates the inbound message event of a turn.
func NewUserMessageEvent(message string) Event {
	e := newEvent(EventUserMessage, "user")
	e.Text = message
	return e
}

// NewAgentResponseEvent creates the final assistant response event.
func NewAgentResponseEvent(agentID, text string) Event {
	e := newEvent(EventAgentResponse, agentID)
	e.Text = text
	return e
}

// NewTransferEvent records a routing handoff with its reason.
func NewTransferEvent(from, to, reason string) Event {
	e := newEvent(EventTransfer, from)
	e.Transfer = &Transfer{From: from, To: to, Reason: reason}
	return e
}

// NewToolCallEvent records a tool invocation request emitted by an agent.
func NewToolCallEvent(agentID, callID, name, arguments string) Event {
	e := newEvent(EventToolCall, agentID)
	e.Tool = &ToolInvocation{ID: callID, Name: name, Arguments: arguments}
	return e
}

// NewToolResultEvent records the completion result (or error) of a tool call.
func NewToolResultEvent(agentID, callID, name string, result any, err error) Event {
	e := newEvent(EventToolResult, agentID)
	inv := &ToolInvocation{ID: callID, Name: name, Result: result}
	if err != nil {
		inv.Error = err.Error()
	}
	e.Tool = inv
	return e
}

// NewErrorEvent marks a failed turn with the error kind and a message.
func NewErrorEvent(author string, err error) Event {
	e := newEvent(EventError, author)
	e.ErrorKind = Kind(err)
	if err != nil {
		e.Text = err.Error()
	}
	return e
}
