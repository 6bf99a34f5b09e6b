package executor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/backend"
	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/internal/testutil"
	"github.com/voyagent/voyagent/personalize"
	"github.com/voyagent/voyagent/profile"
	"github.com/voyagent/voyagent/registry"
	"github.com/voyagent/voyagent/router"
	"github.com/voyagent/voyagent/session"
	"github.com/voyagent/voyagent/tool"
)

type fixture struct {
	executor *Executor
	backend  *backend.ScriptedBackend
	sessions *session.Registry
	profiles *profile.InMemoryStore
}

func newFixture(t *testing.T, optFns ...func(o *Options)) *fixture {
	t.Helper()
	agents, err := registry.DefaultGraph()
	require.NoError(t, err)
	tools, err := tool.DefaultSet()
	require.NoError(t, err)

	profiles := profile.NewInMemoryStore()
	sessions := session.NewRegistry(agents)
	be := backend.NewScriptedBackend()

	opts := append([]func(o *Options){func(o *Options) {
		o.RetryBackoff = time.Millisecond
		o.CallTimeout = time.Second
	}}, optFns...)

	exec := New(
		agents,
		sessions,
		router.New(agents),
		personalize.NewBuilder(profiles),
		be,
		tools,
		profiles,
		opts...,
	)
	return &fixture{executor: exec, backend: be, sessions: sessions, profiles: profiles}
}

func TestRunTurnRejectsEmptyMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.executor.RunTurn(context.Background(), Input{})
	var ve *core.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestRunTurnRoutesToInspiration(t *testing.T) {
	f := newFixture(t)
	msg := "I need some vacation inspiration, suggest accessible destinations in Europe"
	f.backend.Script("inspiration_agent", msg, backend.Response{Text: "How about Barcelona?"})

	result, err := f.executor.RunTurn(context.Background(), Input{Message: msg})
	require.NoError(t, err)

	assert.Equal(t, "inspiration_agent", result.AgentID)
	assert.Equal(t, "How about Barcelona?", result.Response)
	require.Len(t, result.Transfers, 1)
	assert.Equal(t, "root_agent", result.Transfers[0].From)

	// The transfer sticks for the next turn.
	sess, err := f.sessions.Get(result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "inspiration_agent", sess.ActiveAgentID())
}

func TestRunTurnStickyAgentAcrossTurns(t *testing.T) {
	f := newFixture(t)
	first := "suggest some vacation destinations for inspiration"
	f.backend.Script("inspiration_agent", first, backend.Response{Text: "Vienna or Amsterdam."})
	f.backend.Script("inspiration_agent", "tell me more", backend.Response{Text: "Vienna has step-free transit."})

	r1, err := f.executor.RunTurn(context.Background(), Input{Message: first})
	require.NoError(t, err)

	r2, err := f.executor.RunTurn(context.Background(), Input{SessionID: r1.SessionID, Message: "tell me more"})
	require.NoError(t, err)
	assert.Equal(t, "inspiration_agent", r2.AgentID)
	assert.Empty(t, r2.Transfers)

	sess, err := f.sessions.Get(r1.SessionID)
	require.NoError(t, err)
	assert.Len(t, sess.Turns(), 2)
}

func TestRunTurnFollowsBackendTransfer(t *testing.T) {
	f := newFixture(t)
	msg := "help me out"
	f.backend.Script("root_agent", msg, backend.Response{
		Transfer: &backend.TransferRequest{AgentID: "planning_agent", Reason: "planning request"},
	})
	f.backend.Script("planning_agent", msg, backend.Response{Text: "Let's plan."})

	result, err := f.executor.RunTurn(context.Background(), Input{Message: msg})
	require.NoError(t, err)
	assert.Equal(t, "planning_agent", result.AgentID)
	assert.Equal(t, "Let's plan.", result.Response)
	require.Len(t, result.Transfers, 1)
	assert.Equal(t, "planning request", result.Transfers[0].Reason)
}

func TestRunTurnIgnoresInvalidTransfer(t *testing.T) {
	f := newFixture(t)
	msg := "hello there friend"
	// root may not hand off to an agent outside the graph.
	f.backend.Script("root_agent", msg, backend.Response{
		Text:     "Handled here instead.",
		Transfer: &backend.TransferRequest{AgentID: "ghost_agent"},
	})

	result, err := f.executor.RunTurn(context.Background(), Input{Message: msg})
	require.NoError(t, err)
	assert.Equal(t, "root_agent", result.AgentID)
	assert.Equal(t, "Handled here instead.", result.Response)
	assert.Empty(t, result.Transfers)
}

func TestRunTurnDetectsRoutingLoop(t *testing.T) {
	f := newFixture(t)
	msg := "hello there friend"
	f.backend.Script("root_agent", msg, backend.Response{
		Transfer: &backend.TransferRequest{AgentID: "inspiration_agent"},
	})
	f.backend.Script("inspiration_agent", msg, backend.Response{
		Transfer: &backend.TransferRequest{AgentID: "planning_agent"},
	})
	f.backend.Script("planning_agent", msg, backend.Response{
		Transfer: &backend.TransferRequest{AgentID: "root_agent"},
	})

	result, err := f.executor.RunTurn(context.Background(), Input{Message: msg})
	assert.ErrorIs(t, err, core.ErrRoutingLoop)
	require.NotNil(t, result)
	assert.True(t, result.Failed)
	assert.Equal(t, "routing_loop_detected", result.ErrorKind)

	// The failed turn is still on the session log.
	sess, err := f.sessions.Get(result.SessionID)
	require.NoError(t, err)
	turns := sess.Turns()
	require.Len(t, turns, 1)
	assert.True(t, turns[0].Failed)
}

func TestRunTurnBackendUnavailable(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.MaxRetries = 1 })
	f.backend.FailNext(10)

	result, err := f.executor.RunTurn(context.Background(), Input{Message: "hello there friend"})
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
	require.NotNil(t, result)
	assert.True(t, result.Failed)
	assert.Equal(t, "backend_unavailable", result.ErrorKind)
	assert.Equal(t, 2, f.backend.Calls())

	sess, err := f.sessions.Get(result.SessionID)
	require.NoError(t, err)
	require.Len(t, sess.Turns(), 1)
	assert.True(t, sess.Turns()[0].Failed)
}

func TestRunTurnRetriesThenSucceeds(t *testing.T) {
	f := newFixture(t)
	f.backend.FailNext(1)
	f.backend.Script("root_agent", "hello there friend", backend.Response{Text: "Welcome."})

	result, err := f.executor.RunTurn(context.Background(), Input{Message: "hello there friend"})
	require.NoError(t, err)
	assert.Equal(t, "Welcome.", result.Response)
	assert.Equal(t, 2, f.backend.Calls())
}

func TestRunTurnExecutesToolCalls(t *testing.T) {
	f := newFixture(t)
	msg := "hello there friend"
	f.backend.Script("root_agent", msg, backend.Response{
		Text: "Draft saved.",
		ToolCalls: []backend.ToolCall{{
			ID:        "call-1",
			Name:      "save_itinerary_draft",
			Arguments: []byte(`{"destination":"Barcelona"}`),
		}},
	})

	result, err := f.executor.RunTurn(context.Background(), Input{Message: msg})
	require.NoError(t, err)

	var sawCall, sawResult bool
	for _, ev := range result.Events {
		switch ev.Type {
		case core.EventToolCall:
			sawCall = true
		case core.EventToolResult:
			sawResult = true
			assert.Empty(t, ev.Tool.Error)
		}
	}
	assert.True(t, sawCall)
	assert.True(t, sawResult)

	sess, err := f.sessions.Get(result.SessionID)
	require.NoError(t, err)
	v, ok := sess.StateValue(core.StateItineraryDraft)
	require.True(t, ok)
	assert.Equal(t, "Barcelona", v.(map[string]any)["destination"])
}

func TestRunTurnInjectsPersonalization(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.profiles.Put(context.Background(),
		testutil.NewProfileBuilder("u1").MobilityNeeds("wheelchair_accessible").Build()))

	result, err := f.executor.RunTurn(context.Background(), Input{UserID: "u1", Message: "hello there friend"})
	require.NoError(t, err)
	assert.True(t, result.Personalization.Injected)
	assert.Contains(t, result.Personalization.Categories, "accessibility")

	// The profile's last-active marker moved.
	p, err := f.profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, p.LastActive)
}

func TestRunTurnWheelchairProfileRoutedToPlanning(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.profiles.Put(context.Background(),
		testutil.NewProfileBuilder("u2").MobilityNeeds("wheelchair_accessible").Build()))
	msg := "plan a trip to Paris with flights and hotels"
	f.backend.Script("planning_agent", msg, backend.Response{Text: "Here is an accessible Paris plan."})

	result, err := f.executor.RunTurn(context.Background(), Input{UserID: "u2", Message: msg})
	require.NoError(t, err)

	assert.Equal(t, "planning_agent", result.AgentID)
	assert.True(t, result.Personalization.Injected)
	assert.Contains(t, f.backend.LastRequest().Instructions, "wheelchair-accessible")
}

func TestBuildHistorySkipsFailedTurns(t *testing.T) {
	sess := testutil.NewSessionBuilder("s1").
		Turn("root_agent", "hi", "hello").
		FailedTurn("root_agent", "lost", "backend_unavailable").
		Turn("planning_agent", "plan it", "done").
		Build()

	history := buildHistory(sess.Turns())
	require.Len(t, history, 4)
	assert.Equal(t, "hi", history[0].Text)
	assert.Equal(t, "hello", history[1].Text)
	assert.Equal(t, "plan it", history[2].Text)
	assert.Equal(t, "assistant", history[3].Role)
}

func TestRunTurnAnonymousIsNeutral(t *testing.T) {
	f := newFixture(t)

	result, err := f.executor.RunTurn(context.Background(), Input{Message: "hello there friend"})
	require.NoError(t, err)
	assert.False(t, result.Personalization.Injected)
}
