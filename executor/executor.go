// Package executor runs conversation turns end to end: it serializes access
// to the session, routes the message, assembles the personalized backend
// request, executes tool calls and follows agent transfers until a final
// response is produced or a safety bound trips.
package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/voyagent/voyagent/backend"
	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/logging"
	"github.com/voyagent/voyagent/metrics"
	"github.com/voyagent/voyagent/personalize"
	"github.com/voyagent/voyagent/profile"
	"github.com/voyagent/voyagent/registry"
	"github.com/voyagent/voyagent/router"
	"github.com/voyagent/voyagent/session"
	"github.com/voyagent/voyagent/tool"
)

// Defaults for the turn safety bounds.
const (
	DefaultMaxHops      = 5
	DefaultMaxRetries   = 2
	DefaultRetryBackoff = 200 * time.Millisecond
	DefaultCallTimeout  = 60 * time.Second

	historyLimit = 20
)

// Input is one inbound user message. An empty SessionID starts a new
// conversation; an empty UserID runs the turn anonymously.
type Input struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Message   string `json:"message"`
}

// Result is the outcome of one turn. Failed results still carry the event
// trace; the turn was recorded in the session either way.
type Result struct {
	SessionID       string              `json:"session_id"`
	AgentID         string              `json:"agent_id"`
	Response        string              `json:"response,omitempty"`
	Events          []core.Event        `json:"events"`
	Transfers       []core.Transfer     `json:"transfers,omitempty"`
	Personalization personalize.Summary `json:"personalization"`
	Failed          bool                `json:"failed,omitempty"`
	ErrorKind       string              `json:"error_kind,omitempty"`
}

// Options configures an Executor.
type Options struct {
	MaxHops      int
	MaxRetries   int
	RetryBackoff time.Duration
	CallTimeout  time.Duration
	Logger       logging.Logger
}

// Executor wires the routing, personalization, session and backend layers
// into the turn loop. Safe for concurrent use; concurrent turns for the
// same session are serialized by the session registry's lock.
type Executor struct {
	agents       *registry.Registry
	sessions     *session.Registry
	router       *router.Router
	personalizer *personalize.Builder
	backend      backend.Backend
	tools        *tool.Set
	profiles     profile.Store
	opts         Options
}

// New creates an Executor.
func New(
	agents *registry.Registry,
	sessions *session.Registry,
	rt *router.Router,
	pers *personalize.Builder,
	be backend.Backend,
	tools *tool.Set,
	profiles profile.Store,
	optFns ...func(o *Options),
) *Executor {
	opts := Options{
		MaxHops:      DefaultMaxHops,
		MaxRetries:   DefaultMaxRetries,
		RetryBackoff: DefaultRetryBackoff,
		CallTimeout:  DefaultCallTimeout,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{
		agents:       agents,
		sessions:     sessions,
		router:       rt,
		personalizer: pers,
		backend:      be,
		tools:        tools,
		profiles:     profiles,
		opts:         opts,
	}
}

// RunTurn executes one turn. The returned error is non-nil for failed turns
// (core.Kind maps it to a wire code); a non-nil Result is returned alongside
// whenever the turn was recorded in the session.
func (e *Executor) RunTurn(ctx context.Context, in Input) (*Result, error) {
	if in.Message == "" {
		return nil, core.NewValidationError("message", "must not be empty")
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = core.NewID()
	}

	release, err := e.sessions.Lock(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	defer release()

	sess, created := e.sessions.GetOrCreate(sessionID, in.UserID)
	if created {
		metrics.ActiveSessions.Set(float64(e.sessions.Len()))
	}
	userID := sess.UserID

	turn := core.NewTurn(sess.ActiveAgentID(), in.Message)
	events := []core.Event{core.NewUserMessageEvent(in.Message)}
	var transfers []core.Transfer

	active := sess.ActiveAgentID()
	if d := e.router.Route(active, in.Message); d.Transferred {
		events = append(events, core.NewTransferEvent(d.From, d.AgentID, d.Reason))
		transfers = append(transfers, core.Transfer{From: d.From, To: d.AgentID, Reason: d.Reason})
		metrics.TransfersTotal.WithLabelValues(d.From, d.AgentID).Inc()
		sess.SetActiveAgent(d.AgentID)
		active = d.AgentID
	}

	history := buildHistory(sess.Turns())
	var summary personalize.Summary
	var response string

	for hop := 0; ; hop++ {
		if hop >= e.opts.MaxHops {
			err := fmt.Errorf("gave up after %d hops: %w", hop, core.ErrRoutingLoop)
			return e.failTurn(sess, turn, events, transfers, summary, active, err)
		}

		node, err := e.agents.Get(active)
		if err != nil {
			return e.failTurn(sess, turn, events, transfers, summary, active, err)
		}
		payload, err := e.personalizer.Build(ctx, userID, active)
		if err != nil {
			return e.failTurn(sess, turn, events, transfers, summary, active, err)
		}
		summary = payload.Summary()

		req := backend.Request{
			AgentID:      active,
			Instructions: instructionsFor(node, payload),
			History:      history,
			Message:      in.Message,
			Tools:        e.tools.Descriptors(node.Tools),
			State:        sess.StateSnapshot(),
		}
		resp, err := e.complete(ctx, req)
		if err != nil {
			return e.failTurn(sess, turn, events, transfers, summary, active, err)
		}

		events = append(events, e.runToolCalls(ctx, sess, active, resp.ToolCalls)...)

		if resp.Transfer != nil {
			target := resp.Transfer.AgentID
			if !e.transferAllowed(node, target) {
				e.opts.Logger.Warn("backend requested invalid transfer",
					"from", active, "to", target, "session_id", sessionID)
				response = resp.Text
				events = append(events, core.NewAgentResponseEvent(active, resp.Text))
				break
			}
			events = append(events, core.NewTransferEvent(active, target, resp.Transfer.Reason))
			transfers = append(transfers, core.Transfer{From: active, To: target, Reason: resp.Transfer.Reason})
			metrics.TransfersTotal.WithLabelValues(active, target).Inc()
			sess.SetActiveAgent(target)
			active = target
			continue
		}

		response = resp.Text
		events = append(events, core.NewAgentResponseEvent(active, resp.Text))
		break
	}

	turn.AgentID = active
	turn.Response = response
	turn.Events = events
	sess.AddTurn(turn)
	e.touchProfile(ctx, userID)
	metrics.TurnsTotal.WithLabelValues(active, "ok").Inc()

	return &Result{
		SessionID:       sessionID,
		AgentID:         active,
		Response:        response,
		Events:          events,
		Transfers:       transfers,
		Personalization: summary,
	}, nil
}

// complete calls the backend with a per-call timeout, retrying transient
// failures with linear backoff.
func (e *Executor) complete(ctx context.Context, req backend.Request) (*backend.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= e.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			metrics.BackendRetriesTotal.Inc()
			select {
			case <-time.After(time.Duration(attempt) * e.opts.RetryBackoff):
			case <-ctx.Done():
				return nil, fmt.Errorf("backend attempt interrupted (%w): %v", core.ErrBackendUnavailable, ctx.Err())
			}
		}
		callCtx, cancel := context.WithTimeout(ctx, e.opts.CallTimeout)
		resp, err := e.backend.Complete(callCtx, req)
		cancel()
		if err == nil {
			return resp, nil
		}
		lastErr = err
		e.opts.Logger.Warn("backend completion failed",
			"agent", req.AgentID, "attempt", attempt, "error", err)
		if ctx.Err() != nil {
			break
		}
	}
	if errors.Is(lastErr, core.ErrBackendUnavailable) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("backend exhausted (%w): %v", core.ErrBackendUnavailable, lastErr)
}

// runToolCalls executes the backend's tool calls in order, recording a call
// and a result event for each. Tool failures are captured in the result
// event and do not fail the turn.
func (e *Executor) runToolCalls(ctx context.Context, sess *core.Session, agentID string, calls []backend.ToolCall) []core.Event {
	var events []core.Event
	for _, tc := range calls {
		callID := tc.ID
		if callID == "" {
			callID = core.NewID()
		}
		events = append(events, core.NewToolCallEvent(agentID, callID, tc.Name, string(tc.Arguments)))

		t, err := e.tools.Get(tc.Name)
		if err != nil {
			events = append(events, core.NewToolResultEvent(agentID, callID, tc.Name, nil, err))
			continue
		}
		args := map[string]any{}
		if len(tc.Arguments) > 0 {
			if err := json.Unmarshal(tc.Arguments, &args); err != nil {
				events = append(events, core.NewToolResultEvent(agentID, callID, tc.Name, nil,
					tool.NewError(tc.Name, "arguments are not a JSON object", tool.CodeValidation)))
				continue
			}
		}
		result, err := t.Call(tool.NewContext(ctx, sess, agentID, callID), args)
		events = append(events, core.NewToolResultEvent(agentID, callID, tc.Name, result, err))
	}
	return events
}

// failTurn records the failed turn in the session so continuity survives,
// then surfaces the error to the caller.
func (e *Executor) failTurn(
	sess *core.Session,
	turn core.Turn,
	events []core.Event,
	transfers []core.Transfer,
	summary personalize.Summary,
	active string,
	err error,
) (*Result, error) {
	kind := core.Kind(err)
	events = append(events, core.NewErrorEvent(active, err))
	turn.AgentID = active
	turn.Events = events
	turn.Failed = true
	turn.ErrorKind = kind
	sess.AddTurn(turn)
	metrics.TurnsTotal.WithLabelValues(active, kind).Inc()
	e.opts.Logger.Error("turn failed",
		"session_id", sess.ID, "agent", active, "kind", kind, "error", err)
	return &Result{
		SessionID:       sess.ID,
		AgentID:         active,
		Events:          events,
		Transfers:       transfers,
		Personalization: summary,
		Failed:          true,
		ErrorKind:       kind,
	}, err
}

// transferAllowed checks a backend-requested handoff against the graph: the
// target must exist and be one of the current agent's declared targets.
func (e *Executor) transferAllowed(node *registry.AgentNode, target string) bool {
	if !e.agents.Has(target) {
		return false
	}
	for _, t := range node.TransferTargets {
		if t == target {
			return true
		}
	}
	return false
}

// touchProfile bumps the profile's last-active marker, best effort.
func (e *Executor) touchProfile(ctx context.Context, userID string) {
	if userID == "" || e.profiles == nil {
		return
	}
	if err := e.profiles.TouchLastActive(ctx, userID); err != nil && !errors.Is(err, core.ErrNotFound) {
		e.opts.Logger.Warn("touch profile failed", "user_id", userID, "error", err)
	}
}

// instructionsFor joins the agent's standing instructions with the
// personalization fragment.
func instructionsFor(node *registry.AgentNode, payload *personalize.Payload) string {
	if payload.Fragment == "" {
		return node.Instructions
	}
	return node.Instructions + "\n\n" + payload.Fragment
}

// buildHistory flattens the most recent prior turns into backend messages.
// Failed turns are skipped; their user message never got an answer.
func buildHistory(turns []core.Turn) []backend.Message {
	start := 0
	if len(turns) > historyLimit {
		start = len(turns) - historyLimit
	}
	var history []backend.Message
	for _, t := range turns[start:] {
		if t.Failed {
			continue
		}
		history = append(history,
			backend.Message{Role: "user", Text: t.Message},
			backend.Message{Role: "assistant", Text: t.Response},
		)
	}
	return history
}
