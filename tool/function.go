package tool

import (
	"errors"
	"fmt"
)

// FunctionTool adapts a plain Go function into a Tool. Arguments are checked
// against the schema's required list and property types before the function
// runs; failures surface as *Error with code VALIDATION_ERROR, and errors
// from the wrapped function as EXECUTION_ERROR unless the function already
// returned an *Error.
//
// A FunctionTool has no mutable state after construction and is safe for
// concurrent use.
type FunctionTool struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(tc *Context, args map[string]any) (any, error)
}

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(tc *Context, args map[string]any) (any, error),
) *FunctionTool {
	return &FunctionTool{name: name, description: description, parameters: parameters, fn: fn}
}

func (t *FunctionTool) Name() string               { return t.name }
func (t *FunctionTool) Description() string        { return t.description }
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call validates args against the schema then invokes the wrapped function.
func (t *FunctionTool) Call(tc *Context, args map[string]any) (any, error) {
	if err := validateArgs(t.parameters, args); err != nil {
		return nil, NewError(t.name, err.Error(), CodeValidation)
	}
	result, err := t.fn(tc, args)
	if err != nil {
		var te *Error
		if errors.As(err, &te) {
			return nil, te
		}
		return nil, NewError(t.name, err.Error(), CodeExecution)
	}
	return result, nil
}

// validateArgs enforces the required list and, where a property declares a
// primitive type, checks the argument against it. Unknown argument keys are
// tolerated so schema evolution does not break older models.
func validateArgs(schema, args map[string]any) error {
	required, _ := schema["required"].([]string)
	for _, name := range required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required field %q", name)
		}
	}
	properties, _ := schema["properties"].(map[string]any)
	for name, raw := range args {
		prop, ok := properties[name].(map[string]any)
		if !ok {
			continue
		}
		declared, _ := prop["type"].(string)
		if declared == "" {
			continue
		}
		if !typeMatches(declared, raw) {
			return fmt.Errorf("field %q must be of type %s", name, declared)
		}
	}
	return nil
}

// typeMatches checks a decoded JSON value against a schema primitive type.
func typeMatches(declared string, v any) bool {
	switch declared {
	case "string":
		_, ok := v.(string)
		return ok
	case "number", "integer":
		switch v.(type) {
		case float64, int, int64:
			return true
		}
		return false
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	}
	return true
}
