package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"exam-quiz/internal/config"
	"exam-quiz/internal/domain"
	"exam-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleQuestions(n int) []domain.Question {
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			Prompt:        fmt.Sprintf("Choose the antonym of word %d", i+1),
			Options:       []string{"Ancient", "Modern", "Old", "Aged"},
			CorrectAnswer: "Modern",
			Explanation:   "Modern is the opposite of ancient.",
		}
	}
	return qs
}

func syncLauncher(fn func()) { fn() }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(src domain.QuestionSource, opts ...RegistryOption) *SessionRegistry {
	cfg := config.SessionConfig{IdleTTL: time.Hour, SweepInterval: time.Minute}
	opts = append([]RegistryOption{WithLauncher(syncLauncher)}, opts...)
	return NewSessionRegistry(src, cfg, zap.NewNop(), opts...)
}

func TestSessionRegistry_CreateSession(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(sampleQuestions(3), nil).Once()

	reg := newTestRegistry(mockSrc)
	ctx := context.Background()

	created, err := reg.CreateSession(ctx)
	require.NoError(t, err)
	assert.Len(t, created.ID, 26)
	assert.Equal(t, 1, reg.Count())

	got, err := reg.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "READY", got.State)
	assert.Equal(t, 0, got.Score)
	assert.Equal(t, 3, got.Total)
	require.NotNil(t, got.Question)
	assert.Equal(t, 1, got.Question.Number)
	assert.Equal(t, "Choose the antonym of word 1", got.Question.Prompt)
	assert.False(t, got.Question.IsLast)
	assert.Nil(t, got.Percentage)

	mockSrc.AssertExpectations(t)
}

func TestSessionRegistry_CreateSession_ReturnsLoadingWhileFetching(t *testing.T) {
	release := make(chan struct{})
	src := domain.QuestionSourceFunc(func(ctx context.Context) ([]domain.Question, error) {
		<-release
		return sampleQuestions(1), nil
	})
	cfg := config.SessionConfig{IdleTTL: time.Hour}
	reg := NewSessionRegistry(src, cfg, zap.NewNop())

	created, err := reg.CreateSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "LOADING", created.State)
	assert.Nil(t, created.Question)

	close(release)
	assert.Eventually(t, func() bool {
		s, err := reg.GetSession(context.Background(), created.ID)
		return err == nil && s.State == "READY"
	}, time.Second, 5*time.Millisecond)

	reg.Close()
}

func TestSessionRegistry_FetchFailure(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(nil, domain.NewMissingCredentialError()).Once()

	reg := newTestRegistry(mockSrc)
	created, err := reg.CreateSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ERROR", created.State)
	assert.Equal(t, "missing credential", created.Error)
	assert.Nil(t, created.Question)
}

func TestSessionRegistry_FullQuiz(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(sampleQuestions(3), nil)

	reg := newTestRegistry(mockSrc)
	ctx := context.Background()
	created, err := reg.CreateSession(ctx)
	require.NoError(t, err)

	choices := []string{"Modern", "Old", "Modern"}
	for i, choice := range choices {
		res, err := reg.SubmitAnswer(ctx, created.ID, &dto.AnswerRequest{Choice: choice})
		require.NoError(t, err)
		assert.Equal(t, choice == "Modern", res.Result.Correct)
		assert.Equal(t, "Modern", res.Result.CorrectAnswer)
		assert.True(t, res.Session.Answered)
		assert.Equal(t, i == len(choices)-1, res.Session.Question.IsLast)

		_, err = reg.Advance(ctx, created.ID)
		require.NoError(t, err)
	}

	final, err := reg.GetSession(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", final.State)
	assert.Equal(t, 2, final.Score)
	assert.Equal(t, 3, final.Total)
	require.NotNil(t, final.Percentage)
	assert.Equal(t, 67, *final.Percentage)
	assert.Equal(t, "Good job! Keep practicing to improve.", final.Feedback)

	restarted, err := reg.Restart(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "READY", restarted.State)
	assert.Equal(t, 0, restarted.Score)
	assert.Equal(t, 1, restarted.Question.Number)

	mockSrc.AssertNumberOfCalls(t, "FetchQuestions", 2)
}

func TestSessionRegistry_InvalidTransitions(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(sampleQuestions(2), nil)

	reg := newTestRegistry(mockSrc)
	ctx := context.Background()
	created, err := reg.CreateSession(ctx)
	require.NoError(t, err)

	_, err = reg.Advance(ctx, created.ID)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidTransition))

	_, err = reg.Restart(ctx, created.ID)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidTransition))

	_, err = reg.SubmitAnswer(ctx, created.ID, &dto.AnswerRequest{Choice: "Nope"})
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))
}

func TestSessionRegistry_UnknownSession(t *testing.T) {
	reg := newTestRegistry(new(MockQuestionSource))
	ctx := context.Background()
	id := "01J0000000000000000000000"

	_, err := reg.GetSession(ctx, id)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
	_, err = reg.SubmitAnswer(ctx, id, &dto.AnswerRequest{Choice: "x"})
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
	_, err = reg.Advance(ctx, id)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
	_, err = reg.Restart(ctx, id)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
	assert.True(t, domain.HasCode(reg.DeleteSession(ctx, id), domain.CodeSessionNotFound))
}

func TestSessionRegistry_DeleteSession(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(sampleQuestions(1), nil)

	reg := newTestRegistry(mockSrc)
	ctx := context.Background()
	created, err := reg.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, reg.DeleteSession(ctx, created.ID))
	assert.Equal(t, 0, reg.Count())
	_, err = reg.GetSession(ctx, created.ID)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
}

func TestSessionRegistry_SessionsAreIndependent(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(sampleQuestions(2), nil)

	reg := newTestRegistry(mockSrc)
	ctx := context.Background()
	a, err := reg.CreateSession(ctx)
	require.NoError(t, err)
	b, err := reg.CreateSession(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	_, err = reg.SubmitAnswer(ctx, a.ID, &dto.AnswerRequest{Choice: "Modern"})
	require.NoError(t, err)

	sa, _ := reg.GetSession(ctx, a.ID)
	sb, _ := reg.GetSession(ctx, b.ID)
	assert.Equal(t, 1, sa.Score)
	assert.Equal(t, 0, sb.Score)
	assert.False(t, sb.Answered)
}

func TestSessionRegistry_Sweep(t *testing.T) {
	mockSrc := new(MockQuestionSource)
	mockSrc.On("FetchQuestions", mock.Anything).Return(sampleQuestions(1), nil)

	clock := &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	reg := newTestRegistry(mockSrc, WithClock(clock.Now))
	ctx := context.Background()

	idle, err := reg.CreateSession(ctx)
	require.NoError(t, err)
	active, err := reg.CreateSession(ctx)
	require.NoError(t, err)

	clock.Advance(45 * time.Minute)
	_, err = reg.GetSession(ctx, active.ID)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	assert.Equal(t, 1, reg.Sweep())

	_, err = reg.GetSession(ctx, idle.ID)
	assert.True(t, domain.HasCode(err, domain.CodeSessionNotFound))
	_, err = reg.GetSession(ctx, active.ID)
	assert.NoError(t, err)
}

func TestSessionRegistry_RunSweeperStops(t *testing.T) {
	reg := NewSessionRegistry(new(MockQuestionSource), config.SessionConfig{IdleTTL: time.Hour, SweepInterval: time.Millisecond}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- reg.RunSweeper(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionRegistry_CloseCancelsFetches(t *testing.T) {
	started := make(chan struct{})
	src := domain.QuestionSourceFunc(func(ctx context.Context) ([]domain.Question, error) {
		close(started)
		<-ctx.Done()
		return nil, domain.NewRequestFailedError(ctx.Err())
	})
	reg := NewSessionRegistry(src, config.SessionConfig{}, zap.NewNop())

	created, err := reg.CreateSession(context.Background())
	require.NoError(t, err)
	<-started
	reg.Close()

	s, err := reg.GetSession(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", s.State)
	assert.Equal(t, context.Canceled.Error(), s.Error)
}
