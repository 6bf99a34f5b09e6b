package registry

// DefaultGraph returns the built-in inclusive-travel agent tree: a root
// concierge that can hand off to the specialized leaves, each of which may
// transfer back to the root. Deployments normally load a YAML graph; this
// graph keeps the binary usable without one.
func DefaultGraph() (*Registry, error) {
	leaves := []string{
		"inspiration_agent",
		"planning_agent",
		"booking_agent",
		"accessibility_research_agent",
		"mobility_preparation_agent",
		"transit_support_agent",
		"barrier_navigation_agent",
		"pre_trip_agent",
		"in_trip_agent",
		"post_trip_agent",
	}
	nodes := []AgentNode{
		{
			ID: "root_agent",
			Description: "Inclusive travel concierge that greets the user, gathers minimal " +
				"information and delegates to the specialized agents, always prioritizing " +
				"accessibility needs",
			Instructions: "You are an inclusive travel concierge specializing in accessible travel. " +
				"Help users discover accessible destinations, plan inclusive trips and book " +
				"accessible flights and hotels. Gather minimal information and delegate to the " +
				"specialized agents; always consider accessibility needs, disability-related " +
				"expenses and special assistance requirements.",
			Keywords:        []string{"travel", "trip", "help", "accessible"},
			TransferTargets: leaves,
		},
		{
			ID: "inspiration_agent",
			Description: "Suggests accessible dream destinations, vacation ideas, sights and " +
				"things to do, highlighting accessibility features and disabled traveler reviews",
			Instructions: "Inspire the user with destinations and experiences that match both " +
				"their interests and accessibility needs. Highlight accessibility features and " +
				"reviews from travelers with similar profiles.",
			Keywords:        []string{"inspiration", "ideas", "destination", "destinations", "vacation", "dream", "suggest", "europe", "explore"},
			Tools:           []string{"lookup_accessible_destinations", "remember_search_results"},
			TransferTargets: []string{"root_agent", "planning_agent"},
		},
		{
			ID: "planning_agent",
			Description: "Plans trips end to end: accessible flight deals, seat selection, " +
				"lodging and transportation choices, building an itinerary draft",
			Instructions: "Plan the trip with accessible flights, hotels and transportation. " +
				"Consider the user's mobility aids and assistance needs in every recommendation " +
				"and include accessibility features and costs in all suggestions.",
			Keywords:        []string{"plan", "planning", "flight", "flights", "hotel", "hotels", "itinerary", "seat", "lodging", "trip"},
			Tools:           []string{"save_itinerary_draft", "lookup_accessible_destinations", "remember_search_results"},
			TransferTargets: []string{"root_agent", "booking_agent"},
		},
		{
			ID: "booking_agent",
			Description: "Completes bookings and payments, including all necessary accessibility " +
				"accommodations, and confirms accessibility services with providers",
			Instructions: "Handle bookings with accessibility accommodations included by default. " +
				"Communicate the user's specific needs to service providers and confirm every " +
				"accessibility service before finishing.",
			Keywords:        []string{"book", "booking", "pay", "payment", "reserve", "reservation", "confirm"},
			Tools:           []string{"save_itinerary_draft"},
			TransferTargets: []string{"root_agent"},
		},
		{
			ID: "accessibility_research_agent",
			Description: "Researches venue accessibility, disabled traveler reviews and barrier " +
				"assessments for destinations, transport and activities",
			Instructions: "Research accessibility details for the user's specific needs and " +
				"concerns. Prioritize barriers they have flagged and look for reviews from " +
				"travelers with similar accessibility profiles.",
			Keywords:        []string{"research", "accessibility", "wheelchair", "venue", "review", "reviews", "barrier"},
			Tools:           []string{"lookup_accessible_destinations", "remember_search_results"},
			TransferTargets: []string{"root_agent", "barrier_navigation_agent"},
		},
		{
			ID: "mobility_preparation_agent",
			Description: "Prepares mobility aids, medical documentation and assistive equipment " +
				"for travel",
			Instructions: "Guide the user through preparing their mobility aids, medical " +
				"documentation and assistive equipment for the trip.",
			Keywords:        []string{"mobility", "equipment", "medical", "documentation", "wheelchair", "prepare"},
			TransferTargets: []string{"root_agent"},
		},
		{
			ID: "transit_support_agent",
			Description: "Arranges airport assistance, priority services and transit support " +
				"coordination at airports, stations and during transfers",
			Instructions: "Arrange assistance services matching the user's preferences: airport " +
				"assistance, priority boarding and accessible transit between venues.",
			Keywords:        []string{"airport", "assistance", "transit", "station", "boarding", "transfer"},
			TransferTargets: []string{"root_agent"},
		},
		{
			ID: "barrier_navigation_agent",
			Description: "Finds accessible alternatives and real-time solutions when " +
				"accessibility barriers are encountered",
			Instructions: "Solve the barriers the user reports. Offer alternatives matching " +
				"their accessibility needs, and weigh their risk tolerance when suggesting " +
				"workarounds.",
			Keywords:        []string{"barrier", "blocked", "closed", "alternative", "problem", "stuck"},
			Tools:           []string{"lookup_accessible_destinations"},
			TransferTargets: []string{"root_agent", "transit_support_agent"},
		},
		{
			ID: "pre_trip_agent",
			Description: "Handles pre-trip preparation: reminders, packing guidance, travel " +
				"document and visa checks before departure",
			Instructions: "Prepare the user for departure: documents, packing for their " +
				"equipment, and anything accessibility-related to arrange ahead of time.",
			Keywords:        []string{"before", "departure", "packing", "visa", "documents", "checklist"},
			TransferTargets: []string{"root_agent"},
		},
		{
			ID: "in_trip_agent",
			Description: "Supports the traveler during the trip: day-of logistics, changes and " +
				"on-the-ground accessibility help",
			Instructions: "Support the user while traveling: day-of logistics, changes, and " +
				"immediate accessibility help on the ground.",
			Keywords:        []string{"today", "now", "currently", "during", "delayed", "change"},
			TransferTargets: []string{"root_agent", "barrier_navigation_agent"},
		},
		{
			ID: "post_trip_agent",
			Description: "Wraps up after the trip: collects feedback and accessibility reviews " +
				"to improve future recommendations",
			Instructions: "Collect feedback about the trip, especially accessibility experiences, " +
				"to improve future recommendations.",
			Keywords:        []string{"feedback", "review", "returned", "after", "experience"},
			TransferTargets: []string{"root_agent"},
		},
	}
	return New("root_agent", nodes)
}
