package validation

import (
	"strings"

	"exam-quiz/internal/domain"
	"exam-quiz/internal/util"
)

const maxChoiceLength = 1000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID validates a session identifier from the path
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("id", id))
	}

	return errors
}

// ValidateAnswerRequest validates the answer request body
func (v *Validator) ValidateAnswerRequest(choice string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(choice) == "" {
		errors = append(errors, domain.NewMissingFieldError("choice"))
	} else if len(choice) > maxChoiceLength {
		errors = append(errors, domain.NewOutOfRangeError("choice", len(choice), 1, maxChoiceLength))
	}

	return errors
}
