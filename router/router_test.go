package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/registry"
)

func defaultRouter(t *testing.T) *Router {
	t.Helper()
	agents, err := registry.DefaultGraph()
	require.NoError(t, err)
	return New(agents)
}

func TestRouteStaysOnGenericMessage(t *testing.T) {
	r := defaultRouter(t)

	d := r.Route("root_agent", "ok thanks!")
	assert.False(t, d.Transferred)
	assert.Equal(t, "root_agent", d.AgentID)

	// Routing the same message again yields the same decision.
	again := r.Route("root_agent", "ok thanks!")
	assert.Equal(t, d, again)
}

func TestRouteRootToInspiration(t *testing.T) {
	r := defaultRouter(t)

	d := r.Route("root_agent", "I need some vacation inspiration, suggest accessible destinations in Europe")
	assert.True(t, d.Transferred)
	assert.Equal(t, "inspiration_agent", d.AgentID)
	assert.Equal(t, "root_agent", d.From)
	assert.GreaterOrEqual(t, d.Score, DefaultThreshold)
}

func TestRouteBelowThresholdStays(t *testing.T) {
	r := defaultRouter(t)

	// A single weak keyword is not enough to move off the current agent.
	d := r.Route("root_agent", "hmm, inspiration?")
	assert.False(t, d.Transferred)
	assert.Equal(t, "root_agent", d.AgentID)
}

func TestRouteLeafBackToRoot(t *testing.T) {
	agents, err := registry.DefaultGraph()
	require.NoError(t, err)
	r := New(agents)

	d := r.Route("inspiration_agent", "actually I want to plan the trip now, flights and hotels")
	assert.True(t, d.Transferred)
	assert.Equal(t, "planning_agent", d.AgentID)
}

func TestRouteStaysWhenCurrentAgentCoversMessage(t *testing.T) {
	r := defaultRouter(t)

	// Siblings clear the threshold, but the message sits squarely in the
	// active agent's own domain, so it keeps the turn.
	d := r.Route("planning_agent", "plan accessible flights and hotels, then book the reservation")
	assert.False(t, d.Transferred)
	assert.Equal(t, "planning_agent", d.AgentID)
}

func TestRouteTieKeepsEarliestDeclared(t *testing.T) {
	agents, err := registry.New("hub", []registry.AgentNode{
		{
			ID:              "hub",
			Description:     "dispatcher",
			TransferTargets: []string{"alpha", "beta"},
		},
		{
			ID:          "alpha",
			Description: "",
			Keywords:    []string{"museum", "gallery"},
		},
		{
			ID:          "beta",
			Description: "",
			Keywords:    []string{"museum", "gallery"},
		},
	})
	require.NoError(t, err)
	r := New(agents)

	d := r.Route("hub", "find a museum or gallery")
	assert.True(t, d.Transferred)
	assert.Equal(t, "alpha", d.AgentID)
}

func TestRouteUnknownCurrentAgentStays(t *testing.T) {
	r := defaultRouter(t)

	d := r.Route("ghost_agent", "plan flights and hotels for my trip")
	assert.False(t, d.Transferred)
	assert.Equal(t, "ghost_agent", d.AgentID)
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	tokens := Tokenize("I am in EU, to go: PLAN a trip!")
	assert.Contains(t, tokens, "plan")
	assert.Contains(t, tokens, "trip")
	assert.NotContains(t, tokens, "eu")
	assert.NotContains(t, tokens, "to")
}
