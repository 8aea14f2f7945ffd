package service

import (
	"context"

	"exam-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuestionSource ---
type MockQuestionSource struct {
	mock.Mock
}

func (m *MockQuestionSource) FetchQuestions(ctx context.Context) ([]domain.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}
