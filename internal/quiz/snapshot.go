package quiz

import (
	"exam-quiz/internal/domain"
	"exam-quiz/internal/util"
)

// QuestionView is a question as shown before it is answered: the correct
// answer and explanation stay hidden until a choice is submitted.
type QuestionView struct {
	Prompt  string
	Options []string
}

// Snapshot is what the presentation layer renders.
type Snapshot struct {
	State      domain.Lifecycle
	Generation uint64

	// Set in READY.
	Question *QuestionView
	Index    int
	Answered bool
	Answer   *Answer

	// Set in READY and COMPLETED.
	Score int
	Total int

	// Set in ERROR.
	Error string
}

func newSnapshot(state State, generation uint64) Snapshot {
	snap := Snapshot{State: state.Lifecycle(), Generation: generation}

	switch st := state.(type) {
	case Ready:
		q := st.session.current()
		snap.Question = &QuestionView{
			Prompt:  q.Prompt,
			Options: append([]string(nil), q.Options...),
		}
		snap.Index = st.session.index
		snap.Score = st.session.score
		snap.Total = len(st.session.questions)
		if a, ok := st.Answer(); ok {
			snap.Answered = true
			snap.Answer = &a
		}
	case Completed:
		snap.Score = st.Score
		snap.Total = st.Total
	case Failed:
		snap.Error = st.Message
	}
	return snap
}

// Number is the 1-based position of the current question.
func (s Snapshot) Number() int {
	if s.Question == nil {
		return 0
	}
	return s.Index + 1
}

// IsLast reports whether the current question is the final one.
func (s Snapshot) IsLast() bool {
	return s.Question != nil && s.Index+1 >= s.Total
}

func (s Snapshot) Percentage() int {
	return util.Percentage(s.Score, s.Total)
}

// Feedback is the line shown under a final percentage.
func Feedback(percentage int) string {
	switch {
	case percentage >= 80:
		return "Excellent! You're well-prepared."
	case percentage >= 60:
		return "Good job! Keep practicing to improve."
	case percentage >= 40:
		return "Solid effort. Focus on weaker areas."
	default:
		return "Keep studying! Every attempt is a step forward."
	}
}
