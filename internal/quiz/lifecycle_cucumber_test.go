//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"exam-quiz/internal/domain"

	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

// TestLifecycleScenarios runs the quiz lifecycle feature scenarios.
func TestLifecycleScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-lifecycle",
		ScenarioInitializer: InitializeLifecycleScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("features", "lifecycle.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeLifecycleScenario wires steps for quiz lifecycle scenarios.
func InitializeLifecycleScenario(ctx *godog.ScenarioContext) {
	state := &lifecycleScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the question source returns (\d+) questions$`, state.givenQuestions)
	ctx.Step(`^the question source now returns (\d+) questions$`, state.givenQuestions)
	ctx.Step(`^the question source fails with "([^"]*)"$`, state.givenFailure)
	ctx.Step(`^the quiz starts$`, state.whenStart)
	ctx.Step(`^I answer correctly$`, state.whenAnswerCorrectly)
	ctx.Step(`^I answer incorrectly$`, state.whenAnswerIncorrectly)
	ctx.Step(`^I advance$`, state.whenAdvance)
	ctx.Step(`^I restart the quiz$`, state.whenRestart)
	ctx.Step(`^the quiz state is "([^"]*)"$`, state.thenState)
	ctx.Step(`^the current question is (\d+) of (\d+)$`, state.thenPosition)
	ctx.Step(`^the score is (\d+)$`, state.thenScore)
	ctx.Step(`^the final result is (\d+) of (\d+) at (\d+) percent$`, state.thenResult)
	ctx.Step(`^the error message is "([^"]*)"$`, state.thenError)
	ctx.Step(`^the question source was called (\d+) times$`, state.thenCalls)
}

type lifecycleScenarioState struct {
	source  *fixedSource
	machine *Machine
}

// reset clears scenario state.
func (s *lifecycleScenarioState) reset() {
	s.source = &fixedSource{}
	s.machine = NewMachine(s.source, zap.NewNop())
}

func (s *lifecycleScenarioState) givenQuestions(n int) error {
	s.source.mu.Lock()
	defer s.source.mu.Unlock()
	s.source.questions = makeQuestions(n)
	s.source.err = nil
	return nil
}

func (s *lifecycleScenarioState) givenFailure(msg string) error {
	s.source.mu.Lock()
	defer s.source.mu.Unlock()
	s.source.questions = nil
	s.source.err = errors.New(msg)
	return nil
}

func (s *lifecycleScenarioState) whenStart() error {
	load, err := s.machine.Start()
	if err != nil {
		return err
	}
	_ = load(context.Background())
	return nil
}

func (s *lifecycleScenarioState) whenRestart() error {
	load, err := s.machine.Restart()
	if err != nil {
		return err
	}
	_ = load(context.Background())
	return nil
}

// whenAnswerCorrectly submits the current question's correct answer.
func (s *lifecycleScenarioState) whenAnswerCorrectly() error {
	ready, ok := s.machine.State().(Ready)
	if !ok {
		return fmt.Errorf("quiz is not ready")
	}
	_, err := s.machine.SubmitAnswer(ready.Current().CorrectAnswer)
	return err
}

// whenAnswerIncorrectly submits the first option that is not correct.
func (s *lifecycleScenarioState) whenAnswerIncorrectly() error {
	ready, ok := s.machine.State().(Ready)
	if !ok {
		return fmt.Errorf("quiz is not ready")
	}
	q := ready.Current()
	for _, o := range q.Options {
		if o != q.CorrectAnswer {
			_, err := s.machine.SubmitAnswer(o)
			return err
		}
	}
	return fmt.Errorf("question has no wrong option")
}

func (s *lifecycleScenarioState) whenAdvance() error {
	return s.machine.Advance()
}

func (s *lifecycleScenarioState) thenState(want string) error {
	if got := s.machine.Snapshot().State.String(); got != want {
		return fmt.Errorf("expected state %s, got %s", want, got)
	}
	return nil
}

func (s *lifecycleScenarioState) thenPosition(number, total int) error {
	snap := s.machine.Snapshot()
	if snap.Number() != number || snap.Total != total {
		return fmt.Errorf("expected question %d of %d, got %d of %d", number, total, snap.Number(), snap.Total)
	}
	return nil
}

func (s *lifecycleScenarioState) thenScore(want int) error {
	if got := s.machine.Snapshot().Score; got != want {
		return fmt.Errorf("expected score %d, got %d", want, got)
	}
	return nil
}

func (s *lifecycleScenarioState) thenResult(score, total, pct int) error {
	snap := s.machine.Snapshot()
	if snap.State != domain.LifecycleCompleted {
		return fmt.Errorf("quiz is %s, not completed", snap.State)
	}
	if snap.Score != score || snap.Total != total || snap.Percentage() != pct {
		return fmt.Errorf("expected %d/%d (%d%%), got %d/%d (%d%%)",
			score, total, pct, snap.Score, snap.Total, snap.Percentage())
	}
	return nil
}

func (s *lifecycleScenarioState) thenError(want string) error {
	if got := s.machine.Snapshot().Error; got != want {
		return fmt.Errorf("expected error %q, got %q", want, got)
	}
	return nil
}

func (s *lifecycleScenarioState) thenCalls(want int) error {
	if got := s.source.Calls(); got != want {
		return fmt.Errorf("expected %d fetches, got %d", want, got)
	}
	return nil
}
