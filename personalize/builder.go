package personalize

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/voyagent/voyagent/core"
	"github.com/voyagent/voyagent/logging"
	"github.com/voyagent/voyagent/profile"
)

// Payload is the personalization bundle attached to a single turn. It is
// deterministic: building twice from the same profile and agent yields
// byte-identical fragments.
type Payload struct {
	UserID     string          `json:"user_id,omitempty"`
	Injected   bool            `json:"injected"`
	Flags      map[string]bool `json:"flags,omitempty"`
	Directives []string        `json:"directives,omitempty"`
	Fragment   string          `json:"-"`
	Categories []string        `json:"categories,omitempty"`
}

// Summary is the caller-facing view of a payload. It names the categories
// of context that were applied without exposing profile contents.
type Summary struct {
	Injected   bool     `json:"injected"`
	Categories []string `json:"categories,omitempty"`
}

// Summary returns the redacted view of the payload.
func (p *Payload) Summary() Summary {
	return Summary{Injected: p.Injected, Categories: append([]string(nil), p.Categories...)}
}

// Neutral returns the payload used when no profile is available. The
// fragment instructs the agent to avoid assumptions rather than being empty.
func Neutral() *Payload {
	return &Payload{
		Injected: false,
		Fragment: "No user profile is available. Do not assume preferences or accessibility needs; ask when the information matters.",
	}
}

// Builder produces personalization payloads from stored profiles.
type Builder struct {
	store  profile.Store
	logger logging.Logger
}

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	Logger logging.Logger
}

// NewBuilder returns a Builder reading from the given store.
func NewBuilder(store profile.Store, optFns ...func(o *BuilderOptions)) *Builder {
	opts := BuilderOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Builder{store: store, logger: opts.Logger}
}

// Build assembles the payload for one turn. An empty userID or a profile
// that does not exist yields the neutral payload; any other store failure
// is returned to the caller.
func (b *Builder) Build(ctx context.Context, userID, agentID string) (*Payload, error) {
	if userID == "" {
		return Neutral(), nil
	}
	p, err := b.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			b.logger.Debug("personalize: no profile, using neutral payload", "user_id", userID)
			return Neutral(), nil
		}
		return nil, fmt.Errorf("personalize: load profile: %w", err)
	}
	return FromProfile(p, agentID), nil
}

// FromProfile computes the payload for a loaded profile. Exported so tests
// and offline tooling can build payloads without a store.
func FromProfile(p *profile.UserProfile, agentID string) *Payload {
	pl := &Payload{
		UserID:   p.UserID,
		Injected: true,
		Flags:    map[string]bool{},
	}

	applyTable(pl.Flags, p.Accessibility.MobilityNeeds, mobilityNeedFlags)
	applyTable(pl.Flags, p.Accessibility.MobilityAids, mobilityAidFlags)
	applyTable(pl.Flags, p.Accessibility.SensoryNeeds, sensoryNeedFlags)
	applyTable(pl.Flags, p.Accessibility.CognitiveNeeds, cognitiveNeedFlags)
	if p.Accessibility.ServiceAnimal {
		pl.Flags[FlagServiceAnimal] = true
	}
	if len(p.Accessibility.DietaryRestrictions) > 0 {
		pl.Flags[FlagDietaryRestrictions] = true
	}

	for _, flag := range flagOrder {
		if pl.Flags[flag] {
			pl.Directives = append(pl.Directives, flagDirectives[flag])
		}
	}
	if d, ok := communicationDirectives[string(p.Preferences.CommunicationStyle)]; ok {
		pl.Directives = append(pl.Directives, d)
	}
	if d, ok := riskDirectives[string(p.Preferences.RiskTolerance)]; ok {
		pl.Directives = append(pl.Directives, d)
	}

	pl.Categories = categoriesOf(p, pl.Flags)
	pl.Fragment = renderFragment(p, pl, agentID)
	return pl
}

func applyTable(flags map[string]bool, values []string, table map[string]string) {
	for _, v := range values {
		if flag, ok := table[v]; ok {
			flags[flag] = true
		}
	}
}

func categoriesOf(p *profile.UserProfile, flags map[string]bool) []string {
	var cats []string
	if p.BasicInfo.Name != "" || p.BasicInfo.HomeLocation != "" {
		cats = append(cats, "identity")
	}
	if len(p.TravelInterests.PreferredDestinations) > 0 || len(p.TravelInterests.TravelStyle) > 0 ||
		len(p.TravelInterests.ActivityInterests) > 0 || p.TravelInterests.BudgetRange != "" {
		cats = append(cats, "travel_interests")
	}
	if len(flags) > 0 || len(p.Accessibility.BarrierConcerns) > 0 {
		cats = append(cats, "accessibility")
	}
	if p.Preferences.CommunicationStyle != "" || p.Preferences.RiskTolerance != "" {
		cats = append(cats, "preferences")
	}
	return cats
}

// renderFragment lays out the instruction text in a fixed section order.
// List fields are copied and sorted so map iteration and caller-supplied
// ordering never leak into the output.
func renderFragment(p *profile.UserProfile, pl *Payload, agentID string) string {
	var b strings.Builder

	b.WriteString("USER CONTEXT:\n")
	if p.BasicInfo.Name != "" {
		fmt.Fprintf(&b, "- Traveler: %s", p.BasicInfo.Name)
		if p.BasicInfo.HomeLocation != "" {
			fmt.Fprintf(&b, " (home: %s)", p.BasicInfo.HomeLocation)
		}
		b.WriteString("\n")
	}
	if p.BasicInfo.Nationality != "" {
		fmt.Fprintf(&b, "- Nationality: %s\n", p.BasicInfo.Nationality)
	}

	if len(pl.Directives) > 0 {
		b.WriteString("DIRECTIVES:\n")
		for _, d := range pl.Directives {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}

	writeList := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		fmt.Fprintf(&b, "- %s: %s\n", label, strings.Join(sorted(values), ", "))
	}

	acc := p.Accessibility
	if len(acc.MobilityNeeds)+len(acc.SensoryNeeds)+len(acc.CognitiveNeeds)+
		len(acc.MobilityAids)+len(acc.DietaryRestrictions)+len(acc.BarrierConcerns) > 0 {
		b.WriteString("ACCESSIBILITY NEEDS:\n")
		writeList("Mobility", acc.MobilityNeeds)
		writeList("Sensory", acc.SensoryNeeds)
		writeList("Cognitive", acc.CognitiveNeeds)
		writeList("Mobility aids", acc.MobilityAids)
		writeList("Dietary restrictions", acc.DietaryRestrictions)
		writeList("Barrier concerns", acc.BarrierConcerns)
	}

	ti := p.TravelInterests
	if len(ti.PreferredDestinations)+len(ti.TravelStyle)+len(ti.ActivityInterests) > 0 || ti.BudgetRange != "" {
		b.WriteString("TRAVEL PREFERENCES:\n")
		writeList("Destinations of interest", ti.PreferredDestinations)
		if len(ti.TravelStyle) > 0 {
			styles := make([]string, len(ti.TravelStyle))
			for i, s := range ti.TravelStyle {
				styles[i] = string(s)
			}
			writeList("Travel style", styles)
		}
		writeList("Activities", ti.ActivityInterests)
		if ti.BudgetRange != "" {
			fmt.Fprintf(&b, "- Budget: %s\n", ti.BudgetRange)
		}
	}

	if emphasis, ok := agentEmphasis[agentID]; ok {
		fmt.Fprintf(&b, "AGENT FOCUS:\n- %s\n", emphasis)
	}

	return b.String()
}

func sorted(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
