package quizgen

import (
	"context"
	"strings"

	"exam-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// ModelFactory builds the LLM client used for one fetch.
type ModelFactory func(ctx context.Context) (llms.Model, error)

// APIKeyFunc reads the current credential.
type APIKeyFunc func() string

// NewGeminiModelFactory returns a factory that reads the API key on every call
// and fails with a configuration error, before any network traffic, when it
// is missing.
func NewGeminiModelFactory(apiKey APIKeyFunc, modelName string) ModelFactory {
	return func(ctx context.Context) (llms.Model, error) {
		key := ""
		if apiKey != nil {
			key = strings.TrimSpace(apiKey())
		}
		if key == "" {
			return nil, domain.NewMissingCredentialError()
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(key),
			googleai.WithDefaultModel(modelName),
		)
		if err != nil {
			return nil, domain.NewError(domain.CodeConfiguration, "gemini client unavailable", err)
		}
		return llm, nil
	}
}

// StaticModel returns a factory that always hands out m.
func StaticModel(m llms.Model) ModelFactory {
	return func(context.Context) (llms.Model, error) {
		return m, nil
	}
}
