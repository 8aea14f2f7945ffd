package service

import (
	"context"
	"sync"
	"time"

	"exam-quiz/internal/config"
	"exam-quiz/internal/domain"
	"exam-quiz/internal/dto"
	"exam-quiz/internal/quiz"
	"exam-quiz/internal/util"

	"go.uber.org/zap"
)

// SessionService defines the interface for quiz session operations. Each
// session is one quiz attempt owned by one browser tab.
type SessionService interface {
	CreateSession(ctx context.Context) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	SubmitAnswer(ctx context.Context, id string, req *dto.AnswerRequest) (*dto.AnswerResultResponse, error)
	Advance(ctx context.Context, id string) (*dto.SessionResponse, error)
	Restart(ctx context.Context, id string) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, id string) error
	Count() int
}

type sessionEntry struct {
	machine  *quiz.Machine
	lastSeen time.Time
}

// SessionRegistry implements SessionService on top of in-memory quiz machines.
type SessionRegistry struct {
	source domain.QuestionSource
	cfg    config.SessionConfig
	logger *zap.Logger

	// launch runs a fetch; it defaults to a new goroutine.
	launch func(func())
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	loads  sync.WaitGroup

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// RegistryOption customizes a SessionRegistry.
type RegistryOption func(*SessionRegistry)

// WithLauncher replaces how background fetches are started.
func WithLauncher(launch func(func())) RegistryOption {
	return func(r *SessionRegistry) { r.launch = launch }
}

// WithClock replaces the time source used for idle tracking.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *SessionRegistry) { r.now = now }
}

// NewSessionRegistry creates a new instance of SessionRegistry
func NewSessionRegistry(source domain.QuestionSource, cfg config.SessionConfig, logger *zap.Logger, opts ...RegistryOption) *SessionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &SessionRegistry{
		source:   source,
		cfg:      cfg,
		logger:   logger,
		launch:   func(fn func()) { go fn() },
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*sessionEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateSession starts a new quiz. The fetch runs in the background, so the
// returned session is normally LOADING.
func (r *SessionRegistry) CreateSession(ctx context.Context) (*dto.SessionResponse, error) {
	id := util.NewULID()
	m := quiz.NewMachine(r.source, r.logger.With(zap.String("session_id", id)))

	load, err := m.Start()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{machine: m, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Info("Quiz session created", zap.String("session_id", id))
	r.runLoad(id, load)
	return toSessionResponse(id, m.Snapshot()), nil
}

// GetSession implements SessionService
func (r *SessionRegistry) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	m, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(id, m.Snapshot()), nil
}

// SubmitAnswer implements SessionService
func (r *SessionRegistry) SubmitAnswer(ctx context.Context, id string, req *dto.AnswerRequest) (*dto.AnswerResultResponse, error) {
	m, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	answer, err := m.SubmitAnswer(req.Choice)
	if err != nil {
		return nil, err
	}
	return &dto.AnswerResultResponse{
		Result:  toAnswerResponse(answer),
		Session: *toSessionResponse(id, m.Snapshot()),
	}, nil
}

// Advance implements SessionService
func (r *SessionRegistry) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	m, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := m.Advance(); err != nil {
		return nil, err
	}
	return toSessionResponse(id, m.Snapshot()), nil
}

// Restart implements SessionService
func (r *SessionRegistry) Restart(ctx context.Context, id string) (*dto.SessionResponse, error) {
	m, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	load, err := m.Restart()
	if err != nil {
		return nil, err
	}
	r.runLoad(id, load)
	return toSessionResponse(id, m.Snapshot()), nil
}

// DeleteSession implements SessionService
func (r *SessionRegistry) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.NewSessionNotFoundError(id)
	}
	delete(r.sessions, id)
	r.logger.Info("Quiz session deleted", zap.String("session_id", id))
	return nil
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the configured TTL and returns
// how many were removed.
func (r *SessionRegistry) Sweep() int {
	if r.cfg.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info("Evicted idle quiz sessions", zap.Int("evicted", removed), zap.Int("remaining", len(r.sessions)))
	}
	return removed
}

// RunSweeper calls Sweep every SweepInterval until ctx is done.
func (r *SessionRegistry) RunSweeper(ctx context.Context) error {
	interval := r.cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Close cancels outstanding fetches and waits for them to finish.
func (r *SessionRegistry) Close() {
	r.cancel()
	r.loads.Wait()
}

func (r *SessionRegistry) lookup(id string) (*quiz.Machine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	e.lastSeen = r.now()
	return e.machine, nil
}

func (r *SessionRegistry) runLoad(id string, load quiz.Load) {
	r.loads.Add(1)
	r.launch(func() {
		defer r.loads.Done()
		if err := load(r.ctx); err != nil {
			r.logger.Warn("Question fetch failed", zap.String("session_id", id), zap.Error(err))
		}
	})
}

func toSessionResponse(id string, snap quiz.Snapshot) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:       id,
		State:    snap.State.String(),
		Score:    snap.Score,
		Total:    snap.Total,
		Answered: snap.Answered,
		Error:    snap.Error,
	}
	if snap.Question != nil {
		resp.Question = &dto.QuestionResponse{
			Number:  snap.Number(),
			Total:   snap.Total,
			Prompt:  snap.Question.Prompt,
			Options: snap.Question.Options,
			IsLast:  snap.IsLast(),
		}
	}
	if snap.Answer != nil {
		a := toAnswerResponse(*snap.Answer)
		resp.Answer = &a
	}
	if snap.State == domain.LifecycleCompleted {
		pct := snap.Percentage()
		resp.Percentage = &pct
		resp.Feedback = quiz.Feedback(pct)
	}
	return resp
}

func toAnswerResponse(a quiz.Answer) dto.AnswerResponse {
	return dto.AnswerResponse{
		Choice:        a.Choice,
		Correct:       a.Correct,
		CorrectAnswer: a.CorrectAnswer,
		Explanation:   a.Explanation,
	}
}

// Static assertion to ensure SessionRegistry implements SessionService
var _ SessionService = (*SessionRegistry)(nil)
