// Package tool implements the function calling subsystem that lets agents
// perform structured actions during a turn: persisting itinerary drafts,
// looking up curated accessibility data and remembering search results in
// session state. Tools validate their arguments against a minimal JSON
// schema before execution.
package tool

import (
	"fmt"
	"sort"

	"github.com/voyagent/voyagent/core"
)

// Tool is a callable capability exposed to agents.
//
// Implementations should use snake_case names, describe themselves in terms
// the model can act on, and be safe for concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description is shown to the model to explain when to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool against the current turn's context with
	// schema-validated arguments.
	Call(tc *Context, args map[string]any) (any, error)
}

// Descriptor is the transport-facing view of a tool, handed to backends so
// the model can request calls by name.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// DescriptorOf builds the descriptor for a tool.
func DescriptorOf(t Tool) Descriptor {
	return Descriptor{Name: t.Name(), Description: t.Description(), Parameters: t.Parameters()}
}

// Error wraps a tool execution failure with the tool name and a stable code.
type Error struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
}

// Error codes used by the built-in tools and the FunctionTool adapter.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
)

// NewError creates a tool Error.
func NewError(tool, message, code string) *Error {
	return &Error{Tool: tool, Message: message, Code: code}
}

// Set is an immutable lookup of tools by name.
type Set struct {
	tools map[string]Tool
}

// NewSet builds a Set, rejecting duplicate names.
func NewSet(tools ...Tool) (*Set, error) {
	m := make(map[string]Tool, len(tools))
	for _, t := range tools {
		if _, ok := m[t.Name()]; ok {
			return nil, core.NewConfigurationError("duplicate tool %q", t.Name())
		}
		m[t.Name()] = t
	}
	return &Set{tools: m}, nil
}

// Get returns the named tool, or core.ErrNotFound.
func (s *Set) Get(name string) (Tool, error) {
	t, ok := s.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool %q: %w", name, core.ErrNotFound)
	}
	return t, nil
}

// Descriptors returns descriptors for the named tools, skipping unknown
// names. Order follows the input names.
func (s *Set) Descriptors(names []string) []Descriptor {
	var out []Descriptor
	for _, n := range names {
		if t, ok := s.tools[n]; ok {
			out = append(out, DescriptorOf(t))
		}
	}
	return out
}

// Names returns all registered tool names, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.tools))
	for n := range s.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
