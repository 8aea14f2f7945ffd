package quiz

import "exam-quiz/internal/domain"

// State is one lifecycle variant. Each variant carries only the data that is
// valid while it is active.
type State interface {
	Lifecycle() domain.Lifecycle
	isState()
}

// Loading is active while a fetch is outstanding.
type Loading struct{}

// Ready holds the in-progress session.
type Ready struct {
	session *session
}

// Failed carries the message of the fetch that put the machine in ERROR.
type Failed struct {
	Message string
}

// Completed carries the final result.
type Completed struct {
	Score int
	Total int
}

func (Loading) Lifecycle() domain.Lifecycle   { return domain.LifecycleLoading }
func (Ready) Lifecycle() domain.Lifecycle     { return domain.LifecycleReady }
func (Failed) Lifecycle() domain.Lifecycle    { return domain.LifecycleError }
func (Completed) Lifecycle() domain.Lifecycle { return domain.LifecycleCompleted }

func (Loading) isState()   {}
func (Ready) isState()     {}
func (Failed) isState()    {}
func (Completed) isState() {}

// Current returns a copy of the question being asked.
func (r Ready) Current() domain.Question {
	return r.session.current().Clone()
}

func (r Ready) Index() int { return r.session.index }
func (r Ready) Score() int { return r.session.score }
func (r Ready) Total() int { return len(r.session.questions) }

// Answer returns the result recorded for the current question, if any.
func (r Ready) Answer() (Answer, bool) {
	if r.session.answer == nil {
		return Answer{}, false
	}
	return *r.session.answer, true
}

func (r Ready) detach() Ready {
	cp := *r.session
	if cp.answer != nil {
		a := *cp.answer
		cp.answer = &a
	}
	return Ready{session: &cp}
}

// Answer is the outcome of submitting a choice for one question.
type Answer struct {
	Choice        string `json:"choice"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// session is one quiz attempt. Only Machine mutates it.
type session struct {
	questions []domain.Question
	index     int
	score     int
	answer    *Answer
}

func (s *session) current() domain.Question {
	return s.questions[s.index]
}

func (s *session) isLast() bool {
	return s.index+1 >= len(s.questions)
}
