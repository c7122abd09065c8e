package schema

import "fmt"

// ValidationError reports why a raw input was rejected.
type ValidationError struct {
	FieldPath string // field path (e.g., "spec.replicas")
	Message   string
	Err       error
}

func (e *ValidationError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("validation error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// DefinitionError reports a malformed schema definition.
type DefinitionError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *DefinitionError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("schema definition error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("schema definition error: %s", e.Message)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
