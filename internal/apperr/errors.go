package apperr

import "strings"

// ValidationError marks input the caller must fix: a rejected program, an
// oversized source, a malformed request body.
type ValidationError struct {
	Message string
	Details []string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if len(e.Details) > 0 {
		msg += ": " + strings.Join(e.Details, "; ")
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NewValidationDetails keeps every message, in order, next to the summary.
func NewValidationDetails(msg string, details []string) *ValidationError {
	return &ValidationError{Message: msg, Details: append([]string(nil), details...)}
}
