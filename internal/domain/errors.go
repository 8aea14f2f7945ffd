package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Question source errors
	CodeConfiguration     ErrorCode = "CONFIGURATION_ERROR"
	CodeRequestFailed     ErrorCode = "REQUEST_FAILED"
	CodeParseFailure      ErrorCode = "PARSE_FAILURE"
	CodeEmptyResult       ErrorCode = "EMPTY_RESULT"
	CodeValidationFailure ErrorCode = "VALIDATION_FAILURE"

	// Session errors
	CodeSessionNotFound   ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
)

// Messages surfaced verbatim to the user.
const (
	MsgMissingCredential = "missing credential"
	MsgNoQuestions       = "no questions generated"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches on code so errors.Is(err, &DomainError{Code: ...}) works.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a detail rendered in API error bodies.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewConfigurationError(message string) *DomainError {
	return NewError(CodeConfiguration, message, nil)
}

func NewMissingCredentialError() *DomainError {
	return NewConfigurationError(MsgMissingCredential)
}

// NewRequestFailedError keeps the underlying message as the user-facing one.
func NewRequestFailedError(err error) *DomainError {
	msg := "question request failed"
	if err != nil {
		msg = err.Error()
	}
	return NewError(CodeRequestFailed, msg, err)
}

func NewParseFailureError(err error) *DomainError {
	return NewError(CodeParseFailure, "failed to parse generated questions", err)
}

func NewEmptyResultError() *DomainError {
	return NewError(CodeEmptyResult, MsgNoQuestions, nil)
}

func NewValidationFailureError(message string) *DomainError {
	return NewError(CodeValidationFailure, message, nil)
}

func NewSessionNotFoundError(id string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("quiz session not found: %s", id), nil)
}

func NewInvalidTransitionError(event string, state Lifecycle) *DomainError {
	return NewError(CodeInvalidTransition, fmt.Sprintf("cannot %s while %s", event, state), nil).
		WithContext("state", state.String())
}

// UserMessage returns the message shown to the user for err. Domain errors
// expose only their Message; anything else is reported as-is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
