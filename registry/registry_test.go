package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/core"
)

func TestNewRejectsBadGraphs(t *testing.T) {
	var ce *core.ConfigurationError

	_, err := New("", nil)
	assert.ErrorAs(t, err, &ce)

	_, err = New("root", []AgentNode{{ID: "other"}})
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Detail, "root")

	_, err = New("root", []AgentNode{{ID: "root"}, {ID: "root"}})
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Detail, "duplicate")

	_, err = New("root", []AgentNode{{ID: "root", TransferTargets: []string{"ghost"}}})
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Detail, "ghost")
}

func TestGetAndHas(t *testing.T) {
	r, err := New("root", []AgentNode{{ID: "root"}, {ID: "leaf"}})
	require.NoError(t, err)

	n, err := r.Get("leaf")
	require.NoError(t, err)
	assert.Equal(t, "leaf", n.ID)
	assert.True(t, r.Has("leaf"))

	_, err = r.Get("ghost")
	assert.ErrorIs(t, err, core.ErrUnknownAgent)
	assert.False(t, r.Has("ghost"))
}

func TestChildrenPreserveDeclarationOrder(t *testing.T) {
	r, err := New("root", []AgentNode{
		{ID: "root", TransferTargets: []string{"b", "a", "c"}},
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	})
	require.NoError(t, err)

	children := r.ChildrenOf("root")
	require.Len(t, children, 3)
	assert.Equal(t, "b", children[0].ID)
	assert.Equal(t, "a", children[1].ID)
	assert.Equal(t, "c", children[2].ID)

	assert.Nil(t, r.ChildrenOf("ghost"))
}

func TestLoadGraphFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: hub
agents:
  - id: hub
    description: dispatcher
    transfer_targets: [finder]
  - id: finder
    description: finds things
    keywords: [find, search]
    tools: [lookup_accessible_destinations]
`), 0o600))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hub", r.Root().ID)

	finder, err := r.Get("finder")
	require.NoError(t, err)
	assert.Equal(t, []string{"find", "search"}, finder.Keywords)
	assert.Equal(t, []string{"lookup_accessible_destinations"}, finder.Tools)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/agents.yaml")
	var ce *core.ConfigurationError
	assert.ErrorAs(t, err, &ce)
}

func TestDefaultGraphIsValid(t *testing.T) {
	r, err := DefaultGraph()
	require.NoError(t, err)

	assert.Equal(t, "root_agent", r.Root().ID)
	assert.Len(t, r.All(), 11)

	// Every leaf can get back to the root.
	for _, n := range r.All() {
		if n.ID == "root_agent" {
			continue
		}
		assert.Contains(t, n.TransferTargets, "root_agent", "agent %s", n.ID)
	}
}
