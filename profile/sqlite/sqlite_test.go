package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/profile"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, profile.CreateRequest{
		BasicInfo: profile.BasicInfo{Name: "Maya", Email: "maya@example.com"},
	})
	require.NoError(t, err)

	got, err := s.Get(ctx, created.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Maya", got.BasicInfo.Name)
	assert.False(t, got.ProfileComplete)
}

func TestUpdateMerges(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, profile.CreateRequest{
		BasicInfo: profile.BasicInfo{Name: "Maya", Email: "maya@example.com"},
	})
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.UserID, profile.UpdateRequest{
		TravelInterests: &profile.TravelInterests{PreferredDestinations: []string{"Japan"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan"}, updated.TravelInterests.PreferredDestinations)
	assert.Equal(t, "Maya", updated.BasicInfo.Name)

	// The merge persisted, not just the returned value.
	got, err := s.Get(ctx, created.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Japan"}, got.TravelInterests.PreferredDestinations)
}

func TestDeleteAndNotFound(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "ghost"), core.ErrNotFound)

	created, err := s.Create(ctx, profile.CreateRequest{
		BasicInfo: profile.BasicInfo{Name: "Maya", Email: "maya@example.com"},
	})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, created.UserID))
	_, err = s.Get(ctx, created.UserID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestPutUpserts(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	p := &profile.UserProfile{
		UserID:    "seed-1",
		BasicInfo: profile.BasicInfo{Name: "Seed", Email: "seed@example.com"},
	}
	require.NoError(t, s.Put(ctx, p))

	p.BasicInfo.Name = "Seed v2"
	require.NoError(t, s.Put(ctx, p))

	got, err := s.Get(ctx, "seed-1")
	require.NoError(t, err)
	assert.Equal(t, "Seed v2", got.BasicInfo.Name)
}

func TestListPaginates(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Put(ctx, &profile.UserProfile{
			UserID:    id,
			BasicInfo: profile.BasicInfo{Name: id, Email: id + "@example.com"},
		}))
	}

	page, cursor, err := s.List(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "a", page[0].UserID)
	require.Equal(t, "b", cursor)

	page, cursor, err = s.List(ctx, cursor, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].UserID)
	assert.Empty(t, cursor)
}
