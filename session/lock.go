package session

import (
	"context"
	"sync"
)

// Locker serializes work per session id. Each id maps to a one-slot
// semaphore; Acquire blocks until the slot frees or the context ends, so a
// second turn for the same session waits for the first to finish instead of
// interleaving.
type Locker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewLocker returns an empty Locker.
func NewLocker() *Locker {
	return &Locker{slots: make(map[string]chan struct{})}
}

// Acquire takes the lock for the given session id, blocking until it is
// available or ctx is done. On success it returns a release func the caller
// must invoke exactly once.
func (l *Locker) Acquire(ctx context.Context, sessionID string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[sessionID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[sessionID] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Forget drops the slot for an evicted session. Safe to call while the slot
// is held; an outstanding release still works against the old channel.
func (l *Locker) Forget(sessionID string) {
	l.mu.Lock()
	delete(l.slots, sessionID)
	l.mu.Unlock()
}

// Len returns the number of tracked lock slots.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
