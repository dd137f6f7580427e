package schema

import (
	"fmt"
	"reflect"
)

// SchemaError reports a type that cannot serve as a schema.
type SchemaError struct {
	Type   reflect.Type
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Type == nil {
		return e.Reason
	}
	return fmt.Sprintf("schema %s: %s", e.Type, e.Reason)
}

// FieldError reports a single field-level failure: a value that does not
// match the field's declared type, or a field name conflict.
type FieldError struct {
	Name   string // Canonical field name
	Reason string // Human-readable reason for failure
	Value  any    // The offending value, when one exists
}

func (e *FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Name, e.Reason, e.Value)
}

// AggregateError collects multiple field-level failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d field errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// FieldErrors returns the collected errors if err is an AggregateError,
// nil otherwise.
func FieldErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
