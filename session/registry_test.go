package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/registry"
)

func testRegistry(t *testing.T, optFns ...func(o *RegistryOptions)) *Registry {
	t.Helper()
	agents, err := registry.DefaultGraph()
	require.NoError(t, err)
	return NewRegistry(agents, optFns...)
}

func TestGetOrCreateStartsAtRoot(t *testing.T) {
	r := testRegistry(t)

	s, created := r.GetOrCreate("s1", "u1")
	require.True(t, created)
	assert.Equal(t, "root_agent", s.ActiveAgentID())
	assert.Equal(t, "u1", s.UserID)

	again, created := r.GetOrCreate("s1", "other")
	assert.False(t, created)
	assert.Same(t, s, again)
	assert.Equal(t, "u1", again.UserID)
}

func TestGetOrCreateConcurrentConvergence(t *testing.T) {
	r := testRegistry(t)

	const n = 32
	results := make([]*core.Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = r.GetOrCreate("shared", "u1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, results[0], results[i])
	}
	assert.Equal(t, 1, r.Len())
}

func TestSetActiveAgentValidatesTarget(t *testing.T) {
	r := testRegistry(t)
	r.GetOrCreate("s1", "")

	require.NoError(t, r.SetActiveAgent("s1", "planning_agent"))
	s, err := r.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, "planning_agent", s.ActiveAgentID())

	err = r.SetActiveAgent("s1", "ghost_agent")
	assert.ErrorIs(t, err, core.ErrUnknownAgent)
	assert.Equal(t, "planning_agent", s.ActiveAgentID())
}

func TestGetUnknownSession(t *testing.T) {
	r := testRegistry(t)
	_, err := r.Get("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestGCEvictsIdleSessions(t *testing.T) {
	r := testRegistry(t, func(o *RegistryOptions) { o.TTL = time.Minute })

	s, _ := r.GetOrCreate("stale", "")

	evicted := r.GC(s.Updated.Add(30 * time.Second))
	assert.Equal(t, 0, evicted)
	assert.Equal(t, 1, r.Len())

	evicted = r.GC(s.Updated.Add(2 * time.Minute))
	assert.Equal(t, 1, evicted)
	_, err := r.Get("stale")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, 0, r.Len())
}

func TestEvictionDropsLockSlots(t *testing.T) {
	r := testRegistry(t, func(o *RegistryOptions) { o.TTL = time.Minute })

	var last *core.Session
	for _, id := range []string{"s1", "s2", "s3"} {
		last, _ = r.GetOrCreate(id, "")
		release, err := r.Lock(context.Background(), id)
		require.NoError(t, err)
		release()
	}
	assert.Equal(t, 3, r.locks.Len())

	assert.True(t, r.Evict("s1"))
	assert.Equal(t, 2, r.locks.Len())

	evicted := r.GC(last.Updated.Add(2 * time.Minute))
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 0, r.locks.Len())
}

func TestLockerSerializes(t *testing.T) {
	l := NewLocker()
	release, err := l.Acquire(context.Background(), "s1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "s1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// A different session is unaffected.
	r2, err := l.Acquire(context.Background(), "s2")
	require.NoError(t, err)
	r2()

	release()
	r3, err := l.Acquire(context.Background(), "s1")
	require.NoError(t, err)
	r3()
}
