package domain

import (
	"context"
	"fmt"
	"strings"
)

// OptionsPerQuestion is the fixed number of choices for every question.
const OptionsPerQuestion = 4

// Question is a single multiple-choice exam question.
type Question struct {
	Prompt        string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	return out
}

// IsCorrect compares by exact string equality.
func (q Question) IsCorrect(choice string) bool {
	return choice == q.CorrectAnswer
}

// HasOption reports whether choice is one of the options.
func (q Question) HasOption(choice string) bool {
	for _, o := range q.Options {
		if o == choice {
			return true
		}
	}
	return false
}

// Validate checks the ingestion rules for a generated question.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return NewValidationError("question", "prompt is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return NewValidationError("options", fmt.Sprintf("expected %d options, got %d", OptionsPerQuestion, len(q.Options)))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return NewValidationError("options", fmt.Sprintf("option %d is blank", i+1))
		}
		if _, dup := seen[o]; dup {
			return NewValidationError("options", fmt.Sprintf("duplicate option %q", o))
		}
		seen[o] = struct{}{}
	}
	if !q.HasOption(q.CorrectAnswer) {
		return NewValidationError("correctAnswer", fmt.Sprintf("%q is not one of the options", q.CorrectAnswer))
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return NewValidationError("explanation", "explanation is empty")
	}
	return nil
}

// QuestionSource produces a complete question set for one quiz session.
type QuestionSource interface {
	FetchQuestions(ctx context.Context) ([]Question, error)
}

// QuestionSourceFunc adapts a function to QuestionSource.
type QuestionSourceFunc func(ctx context.Context) ([]Question, error)

func (f QuestionSourceFunc) FetchQuestions(ctx context.Context) ([]Question, error) {
	return f(ctx)
}
