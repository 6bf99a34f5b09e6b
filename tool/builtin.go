package tool

import (
	"fmt"
	"strings"

	"github.com/voyagent/voyagent/core"
)

// Destination is one entry of the curated accessible destination dataset.
type Destination struct {
	Name       string   `json:"name"`
	Country    string   `json:"country"`
	Region     string   `json:"region"`
	Highlights []string `json:"highlights"`
	Features   []string `json:"accessibility_features"`
}

// accessibleDestinations is a small curated dataset used by the lookup tool.
// Real deployments would back this with a destination service; the curated
// set keeps the tool useful offline and in tests.
var accessibleDestinations = []Destination{
	{
		Name:       "Barcelona",
		Country:    "Spain",
		Region:     "europe",
		Highlights: []string{"Sagrada Familia", "beach promenade", "Gothic Quarter"},
		Features:   []string{"wheelchair_accessible_metro", "beach_wheelchairs", "accessible_taxis"},
	},
	{
		Name:       "Vienna",
		Country:    "Austria",
		Region:     "europe",
		Highlights: []string{"Schoenbrunn Palace", "museum quarter", "coffee houses"},
		Features:   []string{"step_free_transit", "accessible_museums", "audio_guides"},
	},
	{
		Name:       "Amsterdam",
		Country:    "Netherlands",
		Region:     "europe",
		Highlights: []string{"canal cruises", "Van Gogh Museum", "flower markets"},
		Features:   []string{"accessible_canal_boats", "step_free_trams", "service_animal_friendly"},
	},
	{
		Name:       "Sydney",
		Country:    "Australia",
		Region:     "oceania",
		Highlights: []string{"Opera House", "harbour ferries", "coastal walks"},
		Features:   []string{"accessible_ferries", "beach_matting", "hearing_loops"},
	},
	{
		Name:       "Tokyo",
		Country:    "Japan",
		Region:     "asia",
		Highlights: []string{"temples", "food markets", "gardens"},
		Features:   []string{"elevator_equipped_stations", "tactile_paving", "accessible_restrooms"},
	},
	{
		Name:       "Vancouver",
		Country:    "Canada",
		Region:     "north_america",
		Highlights: []string{"Stanley Park", "mountain views", "seawall"},
		Features:   []string{"accessible_seawall", "step_free_skytrain", "adaptive_outdoor_programs"},
	},
}

// NewLookupAccessibleDestinations returns the destination lookup tool. It
// filters the curated dataset by region and/or required accessibility
// feature and records the result set in session state for later turns.
func NewLookupAccessibleDestinations() Tool {
	return NewFunctionTool(
		"lookup_accessible_destinations",
		"Look up curated accessible travel destinations, optionally filtered by region or required accessibility feature.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"region":  map[string]any{"type": "string", "description": "Region filter, e.g. europe, asia"},
				"feature": map[string]any{"type": "string", "description": "Required accessibility feature"},
			},
		},
		func(tc *Context, args map[string]any) (any, error) {
			region, _ := args["region"].(string)
			feature, _ := args["feature"].(string)
			var matches []Destination
			for _, d := range accessibleDestinations {
				if region != "" && d.Region != strings.ToLower(region) {
					continue
				}
				if feature != "" && !hasFeature(d, feature) {
					continue
				}
				matches = append(matches, d)
			}
			names := make([]string, len(matches))
			for i, d := range matches {
				names[i] = d.Name
			}
			if err := tc.SetState(core.StateLastSearchResults, names); err != nil {
				return nil, err
			}
			return map[string]any{"destinations": matches, "count": len(matches)}, nil
		},
	)
}

func hasFeature(d Destination, feature string) bool {
	want := strings.ToLower(feature)
	for _, f := range d.Features {
		if f == want {
			return true
		}
	}
	return false
}

// NewSaveItineraryDraft returns the tool that stores an itinerary draft in
// session state, overwriting any previous draft.
func NewSaveItineraryDraft() Tool {
	return NewFunctionTool(
		"save_itinerary_draft",
		"Save or replace the working itinerary draft for this conversation.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"destination": map[string]any{"type": "string"},
				"days":        map[string]any{"type": "array", "description": "Ordered day-by-day plan entries"},
				"notes":       map[string]any{"type": "string"},
			},
			"required": []string{"destination"},
		},
		func(tc *Context, args map[string]any) (any, error) {
			draft := map[string]any{"destination": args["destination"]}
			if days, ok := args["days"]; ok {
				draft["days"] = days
			}
			if notes, ok := args["notes"]; ok {
				draft["notes"] = notes
			}
			if err := tc.SetState(core.StateItineraryDraft, draft); err != nil {
				return nil, err
			}
			return map[string]any{"saved": true, "destination": args["destination"]}, nil
		},
	)
}

// NewRememberSearchResults returns the tool that lets an agent stash an
// arbitrary result list in session state for later turns.
func NewRememberSearchResults() Tool {
	return NewFunctionTool(
		"remember_search_results",
		"Remember a list of search results so later turns can refer back to them.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"results": map[string]any{"type": "array", "description": "Result items to remember"},
			},
			"required": []string{"results"},
		},
		func(tc *Context, args map[string]any) (any, error) {
			results := args["results"].([]any)
			if err := tc.SetState(core.StateLastSearchResults, results); err != nil {
				return nil, err
			}
			return map[string]any{"remembered": len(results)}, nil
		},
	)
}

// DefaultSet returns the built-in tool set.
func DefaultSet() (*Set, error) {
	set, err := NewSet(
		NewLookupAccessibleDestinations(),
		NewSaveItineraryDraft(),
		NewRememberSearchResults(),
	)
	if err != nil {
		return nil, fmt.Errorf("tool: default set: %w", err)
	}
	return set, nil
}
