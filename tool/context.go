package tool

import (
	"context"

	"github.com/voyagent/voyagent/core"
)

// Context is the per-invocation environment handed to a tool. It scopes the
// tool to one session's state and carries the identifiers of the turn being
// executed. State writes go through the session's validated delta path, so a
// tool cannot introduce unknown state keys.
type Context struct {
	Ctx     context.Context
	AgentID string
	UserID  string
	CallID  string

	session *core.Session
}

// NewContext binds a tool invocation to a session.
func NewContext(ctx context.Context, session *core.Session, agentID, callID string) *Context {
	return &Context{
		Ctx:     ctx,
		AgentID: agentID,
		UserID:  session.UserID,
		CallID:  callID,
		session: session,
	}
}

// StateValue reads a scratch state key from the session.
func (tc *Context) StateValue(key core.StateKey) (any, bool) {
	return tc.session.StateValue(key)
}

// SetState writes one scratch state key, rejecting unknown keys.
func (tc *Context) SetState(key core.StateKey, value any) error {
	return tc.session.ApplyStateDelta(core.StateDelta{key: value})
}
