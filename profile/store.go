package profile

import (
	"context"
	"time"

	"github.com/voyagent/voyagent/core"
)

// CreateRequest carries the sections of a new profile. BasicInfo is
// required; the remaining sections default to empty.
type CreateRequest struct {
	BasicInfo       BasicInfo        `json:"basic_info" yaml:"basic_info"`
	TravelInterests *TravelInterests `json:"travel_interests,omitempty" yaml:"travel_interests,omitempty"`
	Accessibility   *Accessibility   `json:"accessibility,omitempty" yaml:"accessibility,omitempty"`
	Preferences     *Preferences     `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// Validate checks the required identity fields.
func (r CreateRequest) Validate() error {
	if r.BasicInfo.Name == "" {
		return core.NewValidationError("basic_info.name", "required field is missing")
	}
	if r.BasicInfo.Email == "" {
		return core.NewValidationError("basic_info.email", "required field is missing")
	}
	return nil
}

// UpdateRequest carries a partial profile update. Nil sections are left
// untouched; within a provided section, non-zero fields overwrite and
// everything else retains its prior value.
type UpdateRequest struct {
	BasicInfo       *BasicInfo           `json:"basic_info,omitempty"`
	TravelInterests *TravelInterests     `json:"travel_interests,omitempty"`
	Accessibility   *AccessibilityUpdate `json:"accessibility,omitempty"`
	Preferences     *Preferences         `json:"preferences,omitempty"`
	Onboarding      *bool                `json:"onboarding_completed,omitempty"`
}

// AccessibilityUpdate mirrors Accessibility for partial updates.
// ServiceAnimal is a pointer so an update can set it to false; nil leaves
// the prior value in place.
type AccessibilityUpdate struct {
	MobilityNeeds         []string          `json:"mobility_needs,omitempty"`
	SensoryNeeds          []string          `json:"sensory_needs,omitempty"`
	CognitiveNeeds        []string          `json:"cognitive_needs,omitempty"`
	MobilityAids          []string          `json:"mobility_aids,omitempty"`
	DietaryRestrictions   []string          `json:"dietary_restrictions,omitempty"`
	BarrierConcerns       []string          `json:"barrier_concerns,omitempty"`
	AssistancePreferences map[string]string `json:"assistance_preferences,omitempty"`
	ServiceAnimal         *bool             `json:"service_animal,omitempty"`
	CommunicationNeeds    []string          `json:"communication_needs,omitempty"`
}

// Empty reports whether the request carries no changes at all.
func (r UpdateRequest) Empty() bool {
	return r.BasicInfo == nil && r.TravelInterests == nil &&
		r.Accessibility == nil && r.Preferences == nil && r.Onboarding == nil
}

// Summary is a compact listing entry exposing no sensitive detail beyond
// identity basics.
type Summary struct {
	UserID             string    `json:"user_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	CreatedAt          time.Time `json:"created_at"`
	ProfileComplete    bool      `json:"profile_complete"`
	AccessibilityNeeds int       `json:"accessibility_needs_count"`
	TravelInterests    int       `json:"travel_interests_count"`
}

// SummaryOf builds the listing entry for a profile.
func SummaryOf(p *UserProfile) Summary {
	return Summary{
		UserID:          p.UserID,
		Name:            p.BasicInfo.Name,
		Email:           p.BasicInfo.Email,
		CreatedAt:       p.CreatedAt,
		ProfileComplete: p.ProfileComplete,
		AccessibilityNeeds: len(p.Accessibility.MobilityNeeds) +
			len(p.Accessibility.SensoryNeeds) +
			len(p.Accessibility.CognitiveNeeds),
		TravelInterests: len(p.TravelInterests.PreferredDestinations) +
			len(p.TravelInterests.ActivityInterests) +
			len(p.TravelInterests.AccommodationPreferences),
	}
}

// Store is the profile persistence contract. Durable and in-memory
// implementations behave identically: same semantics, same error kinds.
//
//   - Create assigns a fresh user id on every call (no idempotency).
//   - Update merges field-level, never replaces wholesale.
//   - Get/Update/Delete return core.ErrNotFound for unknown ids.
//   - Every mutation bumps UpdatedAt; CreatedAt is immutable.
type Store interface {
	Create(ctx context.Context, req CreateRequest) (*UserProfile, error)
	Get(ctx context.Context, userID string) (*UserProfile, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*UserProfile, error)
	Delete(ctx context.Context, userID string) error
	List(ctx context.Context, cursor string, limit int) ([]Summary, string, error)

	// TouchLastActive records user activity; best-effort, unknown ids are
	// reported with core.ErrNotFound.
	TouchLastActive(ctx context.Context, userID string) error

	// Put inserts or replaces a fully-formed profile. Intended for
	// configuration-driven seeding and imports, not for request traffic.
	Put(ctx context.Context, p *UserProfile) error
}

// NewFromCreate assembles a UserProfile from a create request. Store
// implementations share it so create semantics cannot drift.
func NewFromCreate(id string, req CreateRequest, now time.Time) *UserProfile {
	p := &UserProfile{
		UserID:    id,
		BasicInfo: req.BasicInfo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.TravelInterests != nil {
		p.TravelInterests = *req.TravelInterests
	}
	if req.Accessibility != nil {
		p.Accessibility = *req.Accessibility
	}
	if req.Preferences != nil {
		p.Preferences = *req.Preferences
	}
	p.ProfileComplete = p.Complete()
	return p
}

// ApplyUpdate merges req into p and refreshes derived fields. The merge is
// field-level: only non-zero fields of a provided section overwrite.
func ApplyUpdate(p *UserProfile, req UpdateRequest, now time.Time) {
	if req.BasicInfo != nil {
		mergeBasicInfo(&p.BasicInfo, req.BasicInfo)
	}
	if req.TravelInterests != nil {
		mergeTravelInterests(&p.TravelInterests, req.TravelInterests)
	}
	if req.Accessibility != nil {
		mergeAccessibility(&p.Accessibility, req.Accessibility)
	}
	if req.Preferences != nil {
		mergePreferences(&p.Preferences, req.Preferences)
	}
	if req.Onboarding != nil {
		p.OnboardingCompleted = *req.Onboarding
	}
	p.ProfileComplete = p.Complete()
	p.UpdatedAt = now
}

func mergeBasicInfo(dst, src *BasicInfo) {
	if src.Name != "" {
		dst.Name = src.Name
	}
	if src.Email != "" {
		dst.Email = src.Email
	}
	if src.Age != 0 {
		dst.Age = src.Age
	}
	if src.Nationality != "" {
		dst.Nationality = src.Nationality
	}
	if src.HomeLocation != "" {
		dst.HomeLocation = src.HomeLocation
	}
	if src.Phone != "" {
		dst.Phone = src.Phone
	}
}

func mergeTravelInterests(dst, src *TravelInterests) {
	if src.PreferredDestinations != nil {
		dst.PreferredDestinations = src.PreferredDestinations
	}
	if src.TravelStyle != nil {
		dst.TravelStyle = src.TravelStyle
	}
	if src.BudgetRange != "" {
		dst.BudgetRange = src.BudgetRange
	}
	if src.GroupSizePreference != "" {
		dst.GroupSizePreference = src.GroupSizePreference
	}
	if src.AccommodationPreferences != nil {
		dst.AccommodationPreferences = src.AccommodationPreferences
	}
	if src.ActivityInterests != nil {
		dst.ActivityInterests = src.ActivityInterests
	}
	if src.TransportationPreferences != nil {
		dst.TransportationPreferences = src.TransportationPreferences
	}
}

func mergeAccessibility(dst *Accessibility, src *AccessibilityUpdate) {
	if src.MobilityNeeds != nil {
		dst.MobilityNeeds = src.MobilityNeeds
	}
	if src.SensoryNeeds != nil {
		dst.SensoryNeeds = src.SensoryNeeds
	}
	if src.CognitiveNeeds != nil {
		dst.CognitiveNeeds = src.CognitiveNeeds
	}
	if src.MobilityAids != nil {
		dst.MobilityAids = src.MobilityAids
	}
	if src.DietaryRestrictions != nil {
		dst.DietaryRestrictions = src.DietaryRestrictions
	}
	if src.BarrierConcerns != nil {
		dst.BarrierConcerns = src.BarrierConcerns
	}
	if src.AssistancePreferences != nil {
		dst.AssistancePreferences = src.AssistancePreferences
	}
	if src.ServiceAnimal != nil {
		dst.ServiceAnimal = *src.ServiceAnimal
	}
	if src.CommunicationNeeds != nil {
		dst.CommunicationNeeds = src.CommunicationNeeds
	}
}

func mergePreferences(dst, src *Preferences) {
	if src.CommunicationStyle != "" {
		dst.CommunicationStyle = src.CommunicationStyle
	}
	if src.RiskTolerance != "" {
		dst.RiskTolerance = src.RiskTolerance
	}
	if src.PlanningHorizon != "" {
		dst.PlanningHorizon = src.PlanningHorizon
	}
	if src.Languages != nil {
		dst.Languages = src.Languages
	}
	if src.Currency != "" {
		dst.Currency = src.Currency
	}
	if src.Timezone != "" {
		dst.Timezone = src.Timezone
	}
}
