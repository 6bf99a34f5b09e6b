package personalize

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/internal/testutil"
	"github.com/voyagent/voyagent/profile"
)

func wheelchairProfile() *profile.UserProfile {
	return testutil.NewProfileBuilder("u1").
		Destinations("Portugal", "Japan").
		Budget(profile.BudgetMidRange).
		MobilityNeeds("wheelchair_accessible").
		MobilityAids("wheelchair").
		ServiceAnimal().
		Communication(profile.CommBrief).
		Risk(profile.RiskLow).
		Build()
}

func TestBuildNeutralWithoutUser(t *testing.T) {
	b := NewBuilder(profile.NewInMemoryStore())

	pl, err := b.Build(context.Background(), "", "root_agent")
	require.NoError(t, err)

	assert.False(t, pl.Injected)
	assert.Empty(t, pl.Flags)
	assert.Contains(t, pl.Fragment, "No user profile is available")
}

func TestBuildNeutralOnUnknownUser(t *testing.T) {
	b := NewBuilder(profile.NewInMemoryStore())

	pl, err := b.Build(context.Background(), "nobody", "root_agent")
	require.NoError(t, err)
	assert.False(t, pl.Injected)
}

func TestBuildWheelchairDirectives(t *testing.T) {
	store := profile.NewInMemoryStore()
	require.NoError(t, store.Put(context.Background(), wheelchairProfile()))
	b := NewBuilder(store)

	pl, err := b.Build(context.Background(), "u1", "planning_agent")
	require.NoError(t, err)

	assert.True(t, pl.Injected)
	assert.True(t, pl.Flags[FlagWheelchairAccessible])
	assert.True(t, pl.Flags[FlagServiceAnimal])
	assert.Contains(t, pl.Fragment, "wheelchair-accessible")
	assert.Contains(t, pl.Fragment, "service animal")
	assert.Contains(t, pl.Fragment, "Keep responses short")
	assert.Contains(t, pl.Fragment, agentEmphasis["planning_agent"])
}

func TestBuildDeterministic(t *testing.T) {
	p := wheelchairProfile()

	first := FromProfile(p, "planning_agent")
	second := FromProfile(p, "planning_agent")

	assert.Equal(t, first.Fragment, second.Fragment)
	assert.Equal(t, first.Directives, second.Directives)
	assert.Equal(t, first.Categories, second.Categories)
}

func TestFragmentSortsLists(t *testing.T) {
	p := wheelchairProfile()
	p.TravelInterests.PreferredDestinations = []string{"Zanzibar", "Austria"}

	pl := FromProfile(p, "inspiration_agent")
	idxA := strings.Index(pl.Fragment, "Austria")
	idxZ := strings.Index(pl.Fragment, "Zanzibar")
	require.Positive(t, idxA)
	assert.Less(t, idxA, idxZ)
}

func TestSummaryHidesProfileContents(t *testing.T) {
	pl := FromProfile(wheelchairProfile(), "root_agent")

	s := pl.Summary()
	assert.True(t, s.Injected)
	assert.Contains(t, s.Categories, "accessibility")
	assert.Contains(t, s.Categories, "identity")
	for _, c := range s.Categories {
		assert.NotContains(t, c, "Maya")
	}
}
