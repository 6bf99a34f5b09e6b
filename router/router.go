// Package router decides which agent handles a turn. Routing is lexical and
// deterministic: the message is tokenized and scored against each candidate
// agent's keywords and description, and control moves only when a candidate
// clearly beats staying put.
package router

import (
	"strings"
	"unicode"

	"github.com/voyagent/voyagent/logging"
	"github.com/voyagent/voyagent/registry"
)

// DefaultThreshold is the minimum score a candidate needs to trigger a
// transfer. Below it the session stays with the current agent.
const DefaultThreshold = 2

// Decision describes the outcome of routing one message.
type Decision struct {
	AgentID     string `json:"agent_id"`
	Transferred bool   `json:"transferred"`
	From        string `json:"from,omitempty"`
	Score       int    `json:"score"`
	Reason      string `json:"reason"`
}

// Router scores messages against the agent graph.
type Router struct {
	agents    *registry.Registry
	threshold int
	logger    logging.Logger
}

// Options configures a Router.
type Options struct {
	Threshold int
	Logger    logging.Logger
}

// New creates a Router over the given agent graph.
func New(agents *registry.Registry, optFns ...func(o *Options)) *Router {
	opts := Options{Threshold: DefaultThreshold, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{agents: agents, threshold: opts.Threshold, logger: opts.Logger}
}

// Route picks the agent for a message given the currently active agent.
// The current agent's own capability is scored first; candidates are its
// declared transfer targets, scored in declaration order, and only a
// strictly higher score displaces an earlier candidate, so ties keep the
// earliest declared target. A transfer happens only when the top candidate
// clears the threshold and beats the current agent's own score.
func (r *Router) Route(currentAgent, message string) Decision {
	tokens := Tokenize(message)
	stay := Decision{AgentID: currentAgent, Reason: "no candidate above threshold"}
	if len(tokens) == 0 {
		return stay
	}

	current, err := r.agents.Get(currentAgent)
	if err != nil {
		return stay
	}

	currentScore := Score(tokens, current)
	best := stay
	for _, targetID := range current.TransferTargets {
		target, err := r.agents.Get(targetID)
		if err != nil {
			continue
		}
		score := Score(tokens, target)
		if score > best.Score {
			best = Decision{AgentID: targetID, Score: score}
		}
	}

	if best.Score < r.threshold || best.AgentID == currentAgent {
		return stay
	}
	if best.Score <= currentScore {
		stay.Score = currentScore
		stay.Reason = "current agent covers the message"
		return stay
	}
	best.Transferred = true
	best.From = currentAgent
	best.Reason = "keyword match"
	r.logger.Debug("routing transfer",
		"from", currentAgent, "to", best.AgentID, "score", best.Score)
	return best
}

// Score counts how many distinct message tokens appear in the agent's
// keywords or description.
func Score(tokens map[string]struct{}, node *registry.AgentNode) int {
	vocab := make(map[string]struct{}, len(node.Keywords))
	for _, kw := range node.Keywords {
		vocab[strings.ToLower(kw)] = struct{}{}
	}
	for tok := range Tokenize(node.Description) {
		vocab[tok] = struct{}{}
	}
	score := 0
	for tok := range tokens {
		if _, ok := vocab[tok]; ok {
			score++
		}
	}
	return score
}

// Tokenize lowercases the text and splits it on non-letter, non-digit runes,
// returning the distinct token set. Tokens shorter than three runes are
// dropped as noise.
func Tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}
