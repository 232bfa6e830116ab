package generation

import (
	"errors"
	"fmt"
)

// Operation names a generation request, for errors and logs.
type Operation string

// Generation operations.
const (
	OpSummary     Operation = "summary"
	OpRefine      Operation = "refine"
	OpCoverLetter Operation = "cover-letter"
	OpSkillGaps   Operation = "skill-gaps"
	OpMatchScore  Operation = "match-score"
)

// GenerationError is the single failure signal of the generation service.
// Cause is an *APICallError, a *ParseError or a *schemas.ValidationError.
type GenerationError struct { //nolint:revive // generation.GenerationError reads fine at call sites
	Operation Operation
	Cause     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Operation, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// APICallError represents an error from the model provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error interpreting the model response
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// EmptyInputError is returned, without contacting the model, when a required
// free-text input is blank.
type EmptyInputError struct {
	Field string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s must not be empty", e.Field)
}

// IsGenerationFailure reports whether err came back from the model side,
// as opposed to a caller error such as blank input.
func IsGenerationFailure(err error) bool {
	var ge *GenerationError
	return errors.As(err, &ge)
}

// IsEmptyInput reports whether err is an *EmptyInputError.
func IsEmptyInput(err error) bool {
	var ee *EmptyInputError
	return errors.As(err, &ee)
}
