package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStateDelta(t *testing.T) {
	s := NewSession("s1", "u1", "root_agent")

	err := s.ApplyStateDelta(StateDelta{StateItineraryDraft: "Barcelona long weekend"})
	require.NoError(t, err)

	v, ok := s.StateValue(StateItineraryDraft)
	require.True(t, ok)
	assert.Equal(t, "Barcelona long weekend", v)

	// Later writes win per key.
	require.NoError(t, s.ApplyStateDelta(StateDelta{StateItineraryDraft: "Vienna instead"}))
	v, _ = s.StateValue(StateItineraryDraft)
	assert.Equal(t, "Vienna instead", v)
}

func TestSessionRejectsUnknownStateKey(t *testing.T) {
	s := NewSession("s1", "", "root_agent")

	err := s.ApplyStateDelta(StateDelta{
		StateItineraryDraft:        "kept out",
		StateKey("favorite_color"): "blue",
	})
	assert.ErrorIs(t, err, ErrUnknownStateKey)

	// The whole delta is rejected, including the valid key.
	_, ok := s.StateValue(StateItineraryDraft)
	assert.False(t, ok)
}

func TestSessionTurnsDefensiveCopy(t *testing.T) {
	s := NewSession("s1", "", "root_agent")
	s.AddTurn(NewTurn("root_agent", "hello"))

	turns := s.Turns()
	turns[0].Message = "mutated"
	assert.Equal(t, "hello", s.Turns()[0].Message)
}

func TestSessionCloneDiverges(t *testing.T) {
	s := NewSession("s1", "u1", "root_agent")
	s.AddTurn(NewTurn("root_agent", "hello"))
	require.NoError(t, s.ApplyStateDelta(StateDelta{StatePendingConfirmation: "book hotel"}))

	c := s.Clone()
	c.SetActiveAgent("planning_agent")
	c.AddTurn(NewTurn("planning_agent", "second"))
	require.NoError(t, c.ApplyStateDelta(StateDelta{StatePendingConfirmation: "changed"}))

	assert.Equal(t, "root_agent", s.ActiveAgentID())
	assert.Len(t, s.Turns(), 1)
	v, _ := s.StateValue(StatePendingConfirmation)
	assert.Equal(t, "book hotel", v)
}

func TestSessionIdleSince(t *testing.T) {
	s := NewSession("s1", "", "root_agent")
	assert.False(t, s.IdleSince(s.Updated.Add(-time.Minute)))
	assert.True(t, s.IdleSince(s.Updated.Add(time.Minute)))
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewSession("s1", "", "root_agent")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddTurn(NewTurn("root_agent", "msg"))
			_ = s.ApplyStateDelta(StateDelta{StateLastSearchResults: []string{"x"}})
			_ = s.Turns()
			_ = s.StateSnapshot()
		}()
	}
	wg.Wait()
	assert.Len(t, s.Turns(), 16)
}
