package core

import "fmt"

// StateKey identifies a well-known scratch state slot. The set is closed:
// deltas referencing any other key are rejected with ErrUnknownStateKey
// rather than silently accepted.
type StateKey string

const (
	// StateItineraryDraft holds the itinerary the user is building.
	StateItineraryDraft StateKey = "itinerary_draft"
	// StateLastSearchResults holds the most recent search/tool results.
	StateLastSearchResults StateKey = "last_search_results"
	// StatePendingConfirmation holds an action awaiting user confirmation.
	StatePendingConfirmation StateKey = "pending_confirmation"
	// StateProfileSummary caches the non-sensitive personalization summary
	// injected for the current user.
	StateProfileSummary StateKey = "user_profile_summary"
)

var knownStateKeys = map[StateKey]bool{
	StateItineraryDraft:      true,
	StateLastSearchResults:   true,
	StatePendingConfirmation: true,
	StateProfileSummary:      true,
}

// KnownStateKey reports whether k belongs to the well-known scratch key set.
func KnownStateKey(k StateKey) bool { return knownStateKeys[k] }

// StateDelta is a set of scratch state mutations applied last-write-wins.
type StateDelta map[StateKey]any

// Validate rejects deltas that reference keys outside the well-known set.
func (d StateDelta) Validate() error {
	for k := range d {
		if !KnownStateKey(k) {
			return fmt.Errorf("%w: %q", ErrUnknownStateKey, k)
		}
	}
	return nil
}
