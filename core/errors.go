package core

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the stable failure taxonomy. Callers are expected
// to test with errors.Is; the HTTP layer maps each kind to a status code.
var (
	// ErrNotFound indicates an unknown user, session or profile identifier.
	ErrNotFound = errors.New("not found")

	// ErrUnknownAgent indicates an agent id that is not present in the
	// agent registry.
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrRoutingLoop is returned when a turn exceeds the maximum number of
	// in-turn transfer hops.
	ErrRoutingLoop = errors.New("routing loop detected")

	// ErrBackendUnavailable is returned when the reasoning backend keeps
	// failing after the configured number of retries.
	ErrBackendUnavailable = errors.New("reasoning backend unavailable")

	// ErrUnknownStateKey is returned when a state delta references a scratch
	// key outside the well-known set.
	ErrUnknownStateKey = errors.New("unknown scratch state key")
)

// ValidationError reports malformed input to a CRUD operation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError constructs a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError is a fatal startup-time error (e.g. an agent graph
// declaring an unresolvable transfer target). It halts process startup and
// is never produced at runtime.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Detail
}

// NewConfigurationError constructs a ConfigurationError with a formatted detail.
func NewConfigurationError(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}

// Kind returns the machine-readable error kind for err, suitable for
// structured responses and retry UX. Unrecognized errors map to "internal".
func Kind(err error) string {
	var ve *ValidationError
	var ce *ConfigurationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return "validation_error"
	case errors.As(err, &ce):
		return "configuration_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnknownAgent):
		return "unknown_agent"
	case errors.Is(err, ErrRoutingLoop):
		return "routing_loop_detected"
	case errors.Is(err, ErrBackendUnavailable):
		return "backend_unavailable"
	case errors.Is(err, ErrUnknownStateKey):
		return "unknown_state_key"
	default:
		return "internal"
	}
}
