package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() Question {
	return Question{
		Prompt:        "Which article of the Constitution abolishes untouchability?",
		Options:       []string{"Article 14", "Article 17", "Article 21", "Article 32"},
		CorrectAnswer: "Article 17",
		Explanation:   "Article 17 abolishes untouchability and forbids its practice in any form.",
	}
}

func TestQuestion_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(q *Question)
		wantField string
	}{
		{"valid", func(q *Question) {}, ""},
		{"empty prompt", func(q *Question) { q.Prompt = "  " }, "question"},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, "options"},
		{"five options", func(q *Question) { q.Options = append(q.Options, "Article 44") }, "options"},
		{"blank option", func(q *Question) { q.Options[2] = "" }, "options"},
		{"duplicate option", func(q *Question) { q.Options[3] = "Article 14" }, "options"},
		{"answer not in options", func(q *Question) { q.CorrectAnswer = "Article 19" }, "correctAnswer"},
		{"answer differs by case", func(q *Question) { q.CorrectAnswer = "article 17" }, "correctAnswer"},
		{"empty explanation", func(q *Question) { q.Explanation = "" }, "explanation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestQuestion_IsCorrect(t *testing.T) {
	q := validQuestion()
	assert.True(t, q.IsCorrect("Article 17"))
	assert.False(t, q.IsCorrect("Article 17 "))
	assert.False(t, q.IsCorrect("Article 14"))
	assert.False(t, q.IsCorrect(""))
}

func TestQuestion_Clone(t *testing.T) {
	q := validQuestion()
	c := q.Clone()
	c.Options[0] = "changed"
	assert.Equal(t, "Article 14", q.Options[0])
}

func TestDomainError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := NewRequestFailedError(cause)

	assert.Equal(t, CodeRequestFailed, err.Code)
	assert.Equal(t, "dial tcp: connection refused", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, &DomainError{Code: CodeRequestFailed}))
	assert.False(t, errors.Is(err, &DomainError{Code: CodeParseFailure}))

	wrapped := fmt.Errorf("fetch: %w", NewMissingCredentialError())
	assert.True(t, HasCode(wrapped, CodeConfiguration))
	assert.Equal(t, MsgMissingCredential, UserMessage(wrapped))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "", UserMessage(nil))
}

func TestNewInvalidTransitionError(t *testing.T) {
	err := NewInvalidTransitionError("advance", LifecycleCompleted)
	assert.Equal(t, CodeInvalidTransition, err.Code)
	assert.Equal(t, "cannot advance while COMPLETED", err.Message)
	assert.Equal(t, "COMPLETED", err.Context["state"])
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{NewMissingFieldError("choice"), NewInvalidFormatError("id", "x")}
	assert.Equal(t, "validation failed: choice: field is required; id: invalid format", errs.Error())
}
