// Package quiz holds the quiz lifecycle: fetching a question set, scoring
// answers one question at a time and reporting the final result.
//
// A Machine is safe for concurrent use. Fetches run outside its lock and are
// tagged with a generation; a fetch that completes after a newer restart is
// discarded.
package quiz

import (
	"context"
	"sync"

	"exam-quiz/internal/domain"

	"go.uber.org/zap"
)

// Load runs the fetch for one LOADING episode and applies its result.
// It returns the fetch error, if any. Callers may run it inline or in a
// goroutine.
type Load func(ctx context.Context) error

// Machine is the quiz state machine.
type Machine struct {
	source domain.QuestionSource
	logger *zap.Logger

	mu         sync.Mutex
	state      State
	started    bool
	generation uint64
}

// NewMachine creates a machine in LOADING that has not fetched yet.
func NewMachine(source domain.QuestionSource, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		source: source,
		logger: logger,
		state:  Loading{},
	}
}

// State returns the active lifecycle variant, detached from the machine.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.state.(Ready); ok {
		return r.detach()
	}
	return m.state
}

// Start begins the first fetch. It may be called once.
func (m *Machine) Start() (Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return nil, domain.NewInvalidTransitionError("start", m.state.Lifecycle())
	}
	m.started = true
	return m.beginLocked("start"), nil
}

// Restart discards the current session and fetches a new question set. It is
// legal from ERROR and COMPLETED, and from LOADING to supersede a fetch that
// is still outstanding.
func (m *Machine) Restart() (Load, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state.(type) {
	case Failed, Completed:
	case Loading:
		if !m.started {
			return nil, domain.NewInvalidTransitionError("restart", m.state.Lifecycle())
		}
	default:
		return nil, domain.NewInvalidTransitionError("restart", m.state.Lifecycle())
	}
	return m.beginLocked("restart"), nil
}

func (m *Machine) beginLocked(event string) Load {
	m.generation++
	gen := m.generation
	m.state = Loading{}
	m.logger.Info("Quiz loading", zap.String("event", event), zap.Uint64("generation", gen))

	return func(ctx context.Context) error {
		questions, err := m.source.FetchQuestions(ctx)
		return m.resolve(gen, questions, err)
	}
}

func (m *Machine) resolve(gen uint64, questions []domain.Question, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation {
		m.logger.Debug("Discarding stale fetch result",
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", m.generation))
		return err
	}

	if err == nil && len(questions) == 0 {
		err = domain.NewEmptyResultError()
	}
	if err != nil {
		msg := domain.UserMessage(err)
		m.state = Failed{Message: msg}
		m.logger.Warn("Quiz fetch failed", zap.Uint64("generation", gen), zap.Error(err))
		return err
	}

	qs := make([]domain.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
	}
	m.state = Ready{session: &session{questions: qs}}
	m.logger.Info("Quiz ready", zap.Uint64("generation", gen), zap.Int("questions", len(qs)))
	return nil
}

// SubmitAnswer scores choice against the current question. A second
// submission for the same question returns the first result unchanged.
func (m *Machine) SubmitAnswer(choice string) (Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ready, ok := m.state.(Ready)
	if !ok {
		return Answer{}, domain.NewInvalidTransitionError("submit an answer", m.state.Lifecycle())
	}
	s := ready.session
	if s.answer != nil {
		return *s.answer, nil
	}

	q := s.current()
	if !q.HasOption(choice) {
		return Answer{}, domain.NewInvalidInputError("choice is not one of the options").
			WithContext("choice", choice)
	}

	answer := Answer{
		Choice:        choice,
		Correct:       q.IsCorrect(choice),
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}
	if answer.Correct {
		s.score++
	}
	s.answer = &answer

	m.logger.Debug("Answer submitted",
		zap.Int("index", s.index),
		zap.Bool("correct", answer.Correct),
		zap.Int("score", s.score))
	return answer, nil
}

// Advance moves past an answered question. After the last question the
// machine enters COMPLETED.
func (m *Machine) Advance() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ready, ok := m.state.(Ready)
	if !ok {
		return domain.NewInvalidTransitionError("advance", m.state.Lifecycle())
	}
	s := ready.session
	if s.answer == nil {
		return domain.NewError(domain.CodeInvalidTransition, "answer the current question before advancing", nil).
			WithContext("state", domain.LifecycleReady.String())
	}

	if !s.isLast() {
		s.index++
		s.answer = nil
		return nil
	}

	m.state = Completed{Score: s.score, Total: len(s.questions)}
	m.logger.Info("Quiz completed", zap.Int("score", s.score), zap.Int("total", len(s.questions)))
	return nil
}

// Snapshot returns a read-only view of the machine for rendering.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return newSnapshot(m.state, m.generation)
}
