package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/voyagent/voyagent/core"
)

// ScriptedBackend is an in-memory Backend for tests and the offline dev
// mode. Responses can be scripted per agent and per message; unscripted
// inputs get a deterministic echo. Failures can be injected to exercise
// retry and error paths.
type ScriptedBackend struct {
	mu        sync.Mutex
	responses map[string]*Response
	failures  int
	calls     int
	last      Request
}

// NewScriptedBackend constructs an empty ScriptedBackend.
func NewScriptedBackend() *ScriptedBackend {
	return &ScriptedBackend{responses: make(map[string]*Response)}
}

func scriptKey(agentID, message string) string { return agentID + "\x00" + message }

// Script registers a canned response for an agent/message pair.
func (b *ScriptedBackend) Script(agentID, message string, resp Response) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[scriptKey(agentID, message)] = &resp
}

// FailNext makes the next n Complete calls return an error wrapping
// core.ErrBackendUnavailable.
func (b *ScriptedBackend) FailNext(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = n
}

// Calls reports how many times Complete has been invoked.
func (b *ScriptedBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// LastRequest returns the most recent Request seen by Complete.
func (b *ScriptedBackend) LastRequest() Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Complete implements Backend.
func (b *ScriptedBackend) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	b.last = req
	if b.failures > 0 {
		b.failures--
		return nil, fmt.Errorf("scripted failure: %w", core.ErrBackendUnavailable)
	}
	if resp, ok := b.responses[scriptKey(req.AgentID, req.Message)]; ok {
		copied := *resp
		return &copied, nil
	}
	return &Response{Text: fmt.Sprintf("[%s] %s", req.AgentID, req.Message)}, nil
}

// Info implements Backend.
func (b *ScriptedBackend) Info() Info {
	return Info{Provider: "scripted", Model: "scripted"}
}

var _ Backend = (*ScriptedBackend)(nil)
