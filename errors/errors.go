package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrValidation = new(ErrCodeValidation, "validation error")
	ErrNotFound   = new(ErrCodeNotFound, "resource not found")
	ErrResource   = new(ErrCodeResource, "resource unavailable")
	ErrOutput     = new(ErrCodeOutput, "output error")
	ErrSystem     = new(ErrCodeSystemError, "system error")
	// maps errors to process exit codes
	exitCodeMap = map[error]int{
		ErrValidation: 2,
		ErrNotFound:   3,
		ErrResource:   4,
		ErrOutput:     5,
		ErrSystem:     1,
	}
)

const (
	ErrCodeValidation  = "validation_error"
	ErrCodeNotFound    = "not_found"
	ErrCodeResource    = "resource_error"
	ErrCodeOutput      = "output_error"
	ErrCodeSystemError = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsResource checks if an error comes from a missing or corrupt font/image
func IsResource(err error) bool {
	return errors.Is(err, ErrResource)
}

// IsOutput checks if an error comes from writing the rendered document
func IsOutput(err error) bool {
	return errors.Is(err, ErrOutput)
}

// ExitCode maps an error to the process exit status used by the CLI.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	for e, code := range exitCodeMap {
		if errors.Is(err, e) {
			return code
		}
	}
	return 1
}

// HintOf returns the first user-facing hint attached to err, or the error text.
func HintOf(err error) string {
	if err == nil {
		return ""
	}
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
