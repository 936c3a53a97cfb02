package planner

import "fmt"

// ValidationError reports malformed or under-specified caller input. It
// is surfaced immediately, before any delegation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GenerationError reports that the text-generation collaborator errored
// or returned no usable output. No partial result is ever substituted.
type GenerationError struct {
	Op  string // "assess", "generate", "rework"
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
