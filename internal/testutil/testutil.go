// Package testutil contains fluent builders used across tests to reduce
// boilerplate when constructing sessions and user profiles. Not intended
// for production usage.
package testutil

import (
	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/profile"
)

// SessionBuilder constructs sessions with pre-populated turns and state.
// Example:
//
//	sess := NewSessionBuilder("s1").User("u1").Turn("root_agent", "hi", "hello").Build()
type SessionBuilder struct {
	id     string
	userID string
	agent  string
	turns  []core.Turn
	state  core.StateDelta
}

// NewSessionBuilder creates a builder for a session starting at root_agent.
func NewSessionBuilder(id string) *SessionBuilder {
	return &SessionBuilder{id: id, agent: "root_agent", state: core.StateDelta{}}
}

// User sets the bound user id (chainable).
func (b *SessionBuilder) User(id string) *SessionBuilder { b.userID = id; return b }

// ActiveAgent sets the active agent (chainable).
func (b *SessionBuilder) ActiveAgent(id string) *SessionBuilder { b.agent = id; return b }

// Turn appends a completed exchange (chainable).
func (b *SessionBuilder) Turn(agentID, message, response string) *SessionBuilder {
	t := core.NewTurn(agentID, message)
	t.Response = response
	b.turns = append(b.turns, t)
	return b
}

// FailedTurn appends a failed exchange with the given error kind (chainable).
func (b *SessionBuilder) FailedTurn(agentID, message, kind string) *SessionBuilder {
	t := core.NewTurn(agentID, message)
	t.Failed = true
	t.ErrorKind = kind
	b.turns = append(b.turns, t)
	return b
}

// State sets a scratch state key (chainable). The key must be well-known.
func (b *SessionBuilder) State(key core.StateKey, v any) *SessionBuilder {
	b.state[key] = v
	return b
}

// Build returns the assembled session.
func (b *SessionBuilder) Build() *core.Session {
	s := core.NewSession(b.id, b.userID, "root_agent")
	if b.agent != "root_agent" {
		s.SetActiveAgent(b.agent)
	}
	for _, t := range b.turns {
		s.AddTurn(t)
	}
	if len(b.state) > 0 {
		if err := s.ApplyStateDelta(b.state); err != nil {
			panic(err)
		}
	}
	return s
}

// ProfileBuilder constructs user profiles for personalization tests.
type ProfileBuilder struct {
	p profile.UserProfile
}

// NewProfileBuilder creates a builder with complete identity defaults.
func NewProfileBuilder(userID string) *ProfileBuilder {
	return &ProfileBuilder{p: profile.UserProfile{
		UserID: userID,
		BasicInfo: profile.BasicInfo{
			Name:         "Maya",
			Email:        "maya@example.com",
			Nationality:  "Canadian",
			HomeLocation: "Toronto",
		},
	}}
}

// Name overrides the default name (chainable).
func (b *ProfileBuilder) Name(name string) *ProfileBuilder {
	b.p.BasicInfo.Name = name
	return b
}

// MobilityNeeds sets accessibility mobility needs (chainable).
func (b *ProfileBuilder) MobilityNeeds(needs ...string) *ProfileBuilder {
	b.p.Accessibility.MobilityNeeds = needs
	return b
}

// MobilityAids sets accessibility mobility aids (chainable).
func (b *ProfileBuilder) MobilityAids(aids ...string) *ProfileBuilder {
	b.p.Accessibility.MobilityAids = aids
	return b
}

// ServiceAnimal marks the profile as traveling with a service animal (chainable).
func (b *ProfileBuilder) ServiceAnimal() *ProfileBuilder {
	b.p.Accessibility.ServiceAnimal = true
	return b
}

// Destinations sets preferred destinations (chainable).
func (b *ProfileBuilder) Destinations(ds ...string) *ProfileBuilder {
	b.p.TravelInterests.PreferredDestinations = ds
	return b
}

// Budget sets the budget range (chainable).
func (b *ProfileBuilder) Budget(r profile.BudgetRange) *ProfileBuilder {
	b.p.TravelInterests.BudgetRange = r
	return b
}

// Communication sets the communication style preference (chainable).
func (b *ProfileBuilder) Communication(s profile.CommunicationStyle) *ProfileBuilder {
	b.p.Preferences.CommunicationStyle = s
	return b
}

// Risk sets the risk tolerance preference (chainable).
func (b *ProfileBuilder) Risk(r profile.RiskTolerance) *ProfileBuilder {
	b.p.Preferences.RiskTolerance = r
	return b
}

// Build returns the assembled profile.
func (b *ProfileBuilder) Build() *profile.UserProfile {
	p := b.p.Clone()
	p.ProfileComplete = p.Complete()
	return p
}
