package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exam-quiz/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tmc/langchaingo/llms"
	lcschema "github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// ValidationPolicy decides what happens to generated questions that fail
// ingestion checks.
type ValidationPolicy string

const (
	// PolicyDrop skips invalid questions and fails only if none remain.
	PolicyDrop ValidationPolicy = "drop"
	// PolicyStrict fails the whole fetch on the first invalid question.
	PolicyStrict ValidationPolicy = "strict"
)

// Options configures a GeminiQuestionSource.
type Options struct {
	Model         string
	Temperature   float64
	QuestionCount int
	Policy        ValidationPolicy
	Timeout       time.Duration
}

// GeminiQuestionSource implements domain.QuestionSource with one structured
// generation call per fetch.
type GeminiQuestionSource struct {
	newModel ModelFactory
	opts     Options
	schema   *jsonschema.Schema
	prompt   string
	logger   *zap.Logger
}

// NewGeminiQuestionSource creates a new instance of GeminiQuestionSource.
func NewGeminiQuestionSource(newModel ModelFactory, opts Options, logger *zap.Logger) (*GeminiQuestionSource, error) {
	if newModel == nil {
		return nil, fmt.Errorf("model factory cannot be nil")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}
	if opts.QuestionCount <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", opts.QuestionCount)
	}
	switch opts.Policy {
	case "":
		opts.Policy = PolicyDrop
	case PolicyDrop, PolicyStrict:
	default:
		return nil, fmt.Errorf("unknown validation policy %q", opts.Policy)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	raw, err := schemaJSON()
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing GeminiQuestionSource",
		zap.String("model", opts.Model),
		zap.Int("question_count", opts.QuestionCount),
		zap.String("policy", string(opts.Policy)))

	return &GeminiQuestionSource{
		newModel: newModel,
		opts:     opts,
		schema:   schema,
		prompt:   buildPrompt(opts.QuestionCount, raw),
		logger:   logger,
	}, nil
}

// FetchQuestions requests a fresh question set. Every failure is returned as
// a *domain.DomainError.
func (s *GeminiQuestionSource) FetchQuestions(ctx context.Context) ([]domain.Question, error) {
	model, err := s.newModel(ctx)
	if err != nil {
		var de *domain.DomainError
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, domain.NewError(domain.CodeConfiguration, "gemini client unavailable", err)
	}

	raw, err := s.generate(ctx, model)
	if err != nil {
		return nil, err
	}

	outputs, err := decodeQuestions(s.schema, cleanResponse(raw))
	if err != nil {
		s.logger.Error("Failed to parse generated questions", zap.Error(err), zap.Int("response_length", len(raw)))
		return nil, domain.NewParseFailureError(err)
	}
	if len(outputs) == 0 {
		s.logger.Warn("Model returned an empty question list", zap.Int("num_requested", s.opts.QuestionCount))
		return nil, domain.NewEmptyResultError()
	}

	questions, err := s.ingest(outputs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Generated questions", zap.Int("num_questions", len(questions)), zap.Int("num_received", len(outputs)))
	return questions, nil
}

func (s *GeminiQuestionSource) generate(ctx context.Context, model llms.Model) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	s.logger.Debug("Requesting questions", zap.String("model", s.opts.Model), zap.Float64("temperature", s.opts.Temperature))

	resp, err := model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(lcschema.ChatMessageTypeHuman, s.prompt)},
		llms.WithModel(s.opts.Model),
		llms.WithTemperature(s.opts.Temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error("Question request timed out", zap.Error(err))
		} else {
			s.logger.Error("Question request failed", zap.Error(err))
		}
		return "", domain.NewRequestFailedError(err)
	}
	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		s.logger.Warn("Model returned no content")
		return "", domain.NewEmptyResultError()
	}
	return resp.Choices[0].Content, nil
}

// ingest converts outputs to domain questions under the configured policy.
func (s *GeminiQuestionSource) ingest(outputs []questionOutput) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(outputs))
	var firstErr error

	for i, o := range outputs {
		q := o.toDomain()
		if err := q.Validate(); err != nil {
			if s.opts.Policy == PolicyStrict {
				return nil, domain.NewValidationFailureError(fmt.Sprintf("question %d is invalid: %v", i+1, err))
			}
			s.logger.Warn("Dropping invalid generated question", zap.Int("index", i), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, domain.NewValidationFailureError(fmt.Sprintf("all %d generated questions were invalid: %v", len(outputs), firstErr))
	}
	return questions, nil
}

// cleanResponse strips whitespace, reasoning blocks and markdown fences that
// some models wrap around JSON output.
func cleanResponse(raw string) string {
	s := strings.TrimSpace(raw)

	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd > thinkStart {
			s = strings.TrimSpace(s[:thinkStart] + s[thinkEnd+len("</think>"):])
		}
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Static assertion to ensure GeminiQuestionSource implements QuestionSource
var _ domain.QuestionSource = (*GeminiQuestionSource)(nil)
