package profile

import (
	"time"
)

// TravelStyle enumerates travel style preferences.
type TravelStyle string

const (
	StyleCultural   TravelStyle = "cultural"
	StyleAdventure  TravelStyle = "adventure"
	StyleRelaxation TravelStyle = "relaxation"
	StyleBusiness   TravelStyle = "business"
	StyleFamily     TravelStyle = "family"
	StyleSolo       TravelStyle = "solo"
	StyleAccessible TravelStyle = "accessible"
)

// BudgetRange enumerates budget preferences.
type BudgetRange string

const (
	BudgetLow      BudgetRange = "budget"
	BudgetMidRange BudgetRange = "mid-range"
	BudgetLuxury   BudgetRange = "luxury"
	BudgetFlexible BudgetRange = "flexible"
)

// CommunicationStyle enumerates how the user prefers responses phrased.
type CommunicationStyle string

const (
	CommBrief          CommunicationStyle = "brief"
	CommDetailed       CommunicationStyle = "detailed"
	CommConversational CommunicationStyle = "conversational"
	CommProfessional   CommunicationStyle = "professional"
)

// RiskTolerance enumerates how adventurous recommendations may be.
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// BasicInfo holds the identity section of a profile. Name and Email are
// required at creation time.
type BasicInfo struct {
	Name         string `json:"name" yaml:"name"`
	Email        string `json:"email" yaml:"email"`
	Age          int    `json:"age,omitempty" yaml:"age,omitempty"`
	Nationality  string `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	HomeLocation string `json:"home_location,omitempty" yaml:"home_location,omitempty"`
	Phone        string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// TravelInterests holds the travel preference section.
type TravelInterests struct {
	PreferredDestinations      []string      `json:"preferred_destinations,omitempty" yaml:"preferred_destinations,omitempty"`
	TravelStyle                []TravelStyle `json:"travel_style,omitempty" yaml:"travel_style,omitempty"`
	BudgetRange                BudgetRange   `json:"budget_range,omitempty" yaml:"budget_range,omitempty"`
	GroupSizePreference        string        `json:"group_size_preference,omitempty" yaml:"group_size_preference,omitempty"`
	AccommodationPreferences   []string      `json:"accommodation_preferences,omitempty" yaml:"accommodation_preferences,omitempty"`
	ActivityInterests          []string      `json:"activity_interests,omitempty" yaml:"activity_interests,omitempty"`
	TransportationPreferences  []string      `json:"transportation_preferences,omitempty" yaml:"transportation_preferences,omitempty"`
}

// Accessibility holds the accessibility needs section.
type Accessibility struct {
	MobilityNeeds         []string          `json:"mobility_needs,omitempty" yaml:"mobility_needs,omitempty"`
	SensoryNeeds          []string          `json:"sensory_needs,omitempty" yaml:"sensory_needs,omitempty"`
	CognitiveNeeds        []string          `json:"cognitive_needs,omitempty" yaml:"cognitive_needs,omitempty"`
	MobilityAids          []string          `json:"mobility_aids,omitempty" yaml:"mobility_aids,omitempty"`
	DietaryRestrictions   []string          `json:"dietary_restrictions,omitempty" yaml:"dietary_restrictions,omitempty"`
	BarrierConcerns       []string          `json:"barrier_concerns,omitempty" yaml:"barrier_concerns,omitempty"`
	AssistancePreferences map[string]string `json:"assistance_preferences,omitempty" yaml:"assistance_preferences,omitempty"`
	ServiceAnimal         bool              `json:"service_animal,omitempty" yaml:"service_animal,omitempty"`
	CommunicationNeeds    []string          `json:"communication_needs,omitempty" yaml:"communication_needs,omitempty"`
}

// Preferences holds interaction settings.
type Preferences struct {
	CommunicationStyle CommunicationStyle `json:"communication_style,omitempty" yaml:"communication_style,omitempty"`
	RiskTolerance      RiskTolerance      `json:"risk_tolerance,omitempty" yaml:"risk_tolerance,omitempty"`
	PlanningHorizon    string             `json:"planning_horizon,omitempty" yaml:"planning_horizon,omitempty"`
	Languages          []string           `json:"languages,omitempty" yaml:"languages,omitempty"`
	Currency           string             `json:"currency,omitempty" yaml:"currency,omitempty"`
	Timezone           string             `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// UserProfile is the complete durable profile. UserID is immutable once
// created; timestamps are maintained by the store.
type UserProfile struct {
	UserID          string          `json:"user_id" yaml:"user_id"`
	BasicInfo       BasicInfo       `json:"basic_info" yaml:"basic_info"`
	TravelInterests TravelInterests `json:"travel_interests" yaml:"travel_interests"`
	Accessibility   Accessibility   `json:"accessibility" yaml:"accessibility"`
	Preferences     Preferences     `json:"preferences" yaml:"preferences"`

	CreatedAt  time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" yaml:"updated_at"`
	LastActive *time.Time `json:"last_active,omitempty" yaml:"last_active,omitempty"`

	ProfileComplete     bool `json:"profile_complete" yaml:"profile_complete"`
	OnboardingCompleted bool `json:"onboarding_completed" yaml:"onboarding_completed"`
}

// Complete reports whether the profile meets the minimum completeness bar:
// full identity plus at least some travel interests or accessibility info.
func (p *UserProfile) Complete() bool {
	basic := p.BasicInfo.Name != "" && p.BasicInfo.Email != "" &&
		p.BasicInfo.Nationality != "" && p.BasicInfo.HomeLocation != ""
	interests := len(p.TravelInterests.PreferredDestinations) > 0 ||
		len(p.TravelInterests.TravelStyle) > 0 ||
		len(p.TravelInterests.ActivityInterests) > 0
	accessibility := len(p.Accessibility.MobilityNeeds) > 0 ||
		len(p.Accessibility.SensoryNeeds) > 0 ||
		len(p.Accessibility.AssistancePreferences) > 0
	return basic && (interests || accessibility)
}

// Clone returns a deep copy safe for independent mutation.
func (p *UserProfile) Clone() *UserProfile {
	c := *p
	c.TravelInterests.PreferredDestinations = cloneSlice(p.TravelInterests.PreferredDestinations)
	c.TravelInterests.TravelStyle = cloneSlice(p.TravelInterests.TravelStyle)
	c.TravelInterests.AccommodationPreferences = cloneSlice(p.TravelInterests.AccommodationPreferences)
	c.TravelInterests.ActivityInterests = cloneSlice(p.TravelInterests.ActivityInterests)
	c.TravelInterests.TransportationPreferences = cloneSlice(p.TravelInterests.TransportationPreferences)
	c.Accessibility.MobilityNeeds = cloneSlice(p.Accessibility.MobilityNeeds)
	c.Accessibility.SensoryNeeds = cloneSlice(p.Accessibility.SensoryNeeds)
	c.Accessibility.CognitiveNeeds = cloneSlice(p.Accessibility.CognitiveNeeds)
	c.Accessibility.MobilityAids = cloneSlice(p.Accessibility.MobilityAids)
	c.Accessibility.DietaryRestrictions = cloneSlice(p.Accessibility.DietaryRestrictions)
	c.Accessibility.BarrierConcerns = cloneSlice(p.Accessibility.BarrierConcerns)
	c.Accessibility.CommunicationNeeds = cloneSlice(p.Accessibility.CommunicationNeeds)
	c.Accessibility.AssistancePreferences = cloneMap(p.Accessibility.AssistancePreferences)
	c.Preferences.Languages = cloneSlice(p.Preferences.Languages)
	if p.LastActive != nil {
		la := *p.LastActive
		c.LastActive = &la
	}
	return &c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
