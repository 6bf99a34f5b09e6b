package personalize

// Fixed lookup tables mapping profile fields to directive flags. Each table
// is keyed by the exact profile value; values not listed here produce no
// flag. The mapping is declared, never inferred, so payload generation stays
// a pure function of the profile.

// mobilityNeedFlags maps Accessibility.MobilityNeeds values.
var mobilityNeedFlags = map[string]string{
	"wheelchair_accessible": FlagWheelchairAccessible,
	"step_free_access":      FlagStepFreeAccess,
	"accessible_parking":    FlagAccessibleParking,
	"elevator_required":     FlagElevatorRequired,
}

// mobilityAidFlags maps Accessibility.MobilityAids values.
var mobilityAidFlags = map[string]string{
	"wheelchair": FlagWheelchairAccessible,
	"walker":     FlagStepFreeAccess,
	"cane":       FlagStepFreeAccess,
	"scooter":    FlagWheelchairAccessible,
}

// sensoryNeedFlags maps Accessibility.SensoryNeeds values.
var sensoryNeedFlags = map[string]string{
	"hearing_assistance": FlagHearingSupport,
	"visual_assistance":  FlagVisualSupport,
}

// cognitiveNeedFlags maps Accessibility.CognitiveNeeds values.
var cognitiveNeedFlags = map[string]string{
	"clear_signage": FlagClearNavigation,
	"quiet_spaces":  FlagQuietSpaces,
}

// Directive flag names exposed in PersonalizationPayload.Flags.
const (
	FlagWheelchairAccessible = "wheelchair_accessible"
	FlagStepFreeAccess       = "step_free_access"
	FlagAccessibleParking    = "accessible_parking"
	FlagElevatorRequired     = "elevator_required"
	FlagHearingSupport       = "hearing_support"
	FlagVisualSupport        = "visual_support"
	FlagClearNavigation      = "clear_navigation"
	FlagQuietSpaces          = "quiet_spaces"
	FlagServiceAnimal        = "service_animal"
	FlagDietaryRestrictions  = "dietary_restrictions"
)

// flagDirectives is the instruction sentence emitted for each active flag,
// in the order listed in flagOrder.
var flagDirectives = map[string]string{
	FlagWheelchairAccessible: "Only recommend wheelchair-accessible venues, rooms and transport; verify roll-in access.",
	FlagStepFreeAccess:       "Prefer step-free routes and venues; flag any stairs explicitly.",
	FlagAccessibleParking:    "Note accessible parking availability for every venue.",
	FlagElevatorRequired:     "Require elevator access for any accommodation above ground level.",
	FlagHearingSupport:       "Mention hearing loops, captioning and visual alarms where available.",
	FlagVisualSupport:        "Describe environments clearly; mention braille, tactile guidance and audio description.",
	FlagClearNavigation:      "Prefer venues with clear signage and simple layouts; give step-by-step directions.",
	FlagQuietSpaces:          "Prefer quieter venues and times; mention quiet rooms where available.",
	FlagServiceAnimal:        "Confirm service animal policies for every venue, carrier and accommodation.",
	FlagDietaryRestrictions:  "Check menus against the user's dietary restrictions before recommending.",
}

// flagOrder fixes deterministic rendering order for directives.
var flagOrder = []string{
	FlagWheelchairAccessible,
	FlagStepFreeAccess,
	FlagAccessibleParking,
	FlagElevatorRequired,
	FlagHearingSupport,
	FlagVisualSupport,
	FlagClearNavigation,
	FlagQuietSpaces,
	FlagServiceAnimal,
	FlagDietaryRestrictions,
}

// communicationDirectives maps Preferences.CommunicationStyle.
var communicationDirectives = map[string]string{
	"brief":          "Keep responses short and to the point.",
	"detailed":       "Give thorough responses with full reasoning and alternatives.",
	"conversational": "Use a warm, conversational tone.",
	"professional":   "Use a professional, businesslike tone.",
}

// riskDirectives maps Preferences.RiskTolerance.
var riskDirectives = map[string]string{
	"low":    "Recommend well-established, predictable options; avoid anything uncertain.",
	"medium": "Balance reliable choices with the occasional adventurous suggestion.",
	"high":   "Adventurous and off-the-beaten-path suggestions are welcome.",
}

// agentEmphasis adds a short agent-specific emphasis line to the fragment.
// Agents not listed get no extra line.
var agentEmphasis = map[string]string{
	"root_agent":                   "Prioritize accessibility considerations in routing decisions.",
	"inspiration_agent":            "Highlight accessibility features and disabled traveler reviews for every suggestion.",
	"planning_agent":               "Prioritize accessible flights, hotels and transportation; include accessibility costs.",
	"booking_agent":                "Include all necessary accessibility accommodations in bookings and confirm them.",
	"accessibility_research_agent": "Focus research on the user's declared accessibility needs and barrier concerns.",
	"mobility_preparation_agent":   "Tailor preparation guidance to the user's specific mobility aids and equipment.",
	"transit_support_agent":        "Arrange assistance matching the user's preferred assistance types.",
	"barrier_navigation_agent":     "Prioritize solutions for the barriers the user finds most concerning.",
}
