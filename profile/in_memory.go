package profile

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voyagent/voyagent/core"
)

// InMemoryStore is a volatile Store implementation keeping profiles in a
// process-local map. It is safe for concurrent access and best suited for
// tests, development and the fallback mode when no durable store is
// configured. Returned profiles are clones to prevent external mutation of
// internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*UserProfile
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore constructs an empty in-memory profile store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]*UserProfile)}
}

// Create validates the request and stores a new profile under a fresh id.
func (s *InMemoryStore) Create(_ context.Context, req CreateRequest) (*UserProfile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p := NewFromCreate(uuid.NewString(), req, time.Now().UTC())
	s.mu.Lock()
	s.profiles[p.UserID] = p
	s.mu.Unlock()
	return p.Clone(), nil
}

// Get returns a clone of the stored profile or core.ErrNotFound.
func (s *InMemoryStore) Get(_ context.Context, userID string) (*UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	return p.Clone(), nil
}

// Update merges the partial request into the stored profile.
func (s *InMemoryStore) Update(_ context.Context, userID string, req UpdateRequest) (*UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, core.ErrNotFound
	}
	ApplyUpdate(p, req, time.Now().UTC())
	return p.Clone(), nil
}

// Delete removes the profile; unknown ids report core.ErrNotFound.
func (s *InMemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		return core.ErrNotFound
	}
	delete(s.profiles, userID)
	return nil
}

// List returns summaries ordered by user id. The cursor is the last id of
// the previous page; an empty next cursor marks the final page.
func (s *InMemoryStore) List(_ context.Context, cursor string, limit int) ([]Summary, string, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		if id > cursor {
			ids = append(ids, id)
		}
	}
	s.mu.RUnlock()
	sort.Strings(ids)

	if len(ids) > limit {
		ids = ids[:limit]
	}
	summaries := make([]Summary, 0, len(ids))
	s.mu.RLock()
	for _, id := range ids {
		if p, ok := s.profiles[id]; ok {
			summaries = append(summaries, SummaryOf(p))
		}
	}
	s.mu.RUnlock()

	next := ""
	if len(summaries) == limit {
		next = summaries[len(summaries)-1].UserID
	}
	return summaries, next, nil
}

// TouchLastActive records the current time as the user's last activity.
func (s *InMemoryStore) TouchLastActive(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return core.ErrNotFound
	}
	now := time.Now().UTC()
	p.LastActive = &now
	return nil
}

// Put inserts or replaces a fully-formed profile (seeding/import path).
func (s *InMemoryStore) Put(_ context.Context, p *UserProfile) error {
	if p.UserID == "" {
		return core.NewValidationError("user_id", "required field is missing")
	}
	now := time.Now().UTC()
	c := p.Clone()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	c.ProfileComplete = c.Complete()
	s.mu.Lock()
	s.profiles[c.UserID] = c
	s.mu.Unlock()
	return nil
}
