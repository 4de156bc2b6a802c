package schema

import (
	"fmt"
	"strings"
)

// FieldError describes one violated constraint on one field.
type FieldError struct {
	// Field is the name of the field that failed validation.
	Field string `json:"field"`

	// Path locates the field in nested or array contexts (e.g., "[1].name").
	// For top-level object validation it equals the field name.
	Path string `json:"path,omitempty"`

	// Expected describes what the rule wanted.
	Expected string `json:"expected"`

	// Actual echoes the offending value for diagnostics.
	Actual any `json:"actual,omitempty"`

	// Message is a human-readable description of the violation.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = e.Field
	}
	if loc == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Result is the outcome of one validation run. It is plain data: validation
// never panics or performs I/O, and the caller decides whether a failed
// result is fatal. A result is valid if and only if Errors is empty;
// warnings never affect validity.
type Result struct {
	Valid    bool         `json:"valid"`
	Errors   []FieldError `json:"errors,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
}

// Err collapses the result into a single error, or nil when valid.
// Useful for callers that want to fail fast on an invalid response.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, fe := range r.Errors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// newResult builds a Result enforcing the Valid/Errors invariant.
func newResult(errs []FieldError, warnings []string) Result {
	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}
