// Package tui is the terminal front end for a quiz.Machine.
package tui

import (
	"context"

	"exam-quiz/internal/domain"
	"exam-quiz/internal/quiz"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the quiz UI model.
type Options struct {
	NoColor bool
}

// Model renders one quiz machine using Bubble Tea.
type Model struct {
	ctx     context.Context
	machine *quiz.Machine
	keys    keyMap
	spinner spinner.Model
	styles  styles

	// cursor is the highlighted option on the current question.
	cursor int
	width  int
	err    error
}

// NewModel constructs a UI model for machine. Fetches run with ctx.
func NewModel(ctx context.Context, machine *quiz.Machine, opts Options) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	st := newStyles(opts.NoColor)
	s.Style = st.accent
	return Model{
		ctx:     ctx,
		machine: machine,
		keys:    defaultKeyMap(),
		spinner: s,
		styles:  st,
	}
}

// loadedMsg reports that a fetch finished, successfully or not.
type loadedMsg struct {
	err error
}

// Init starts the first fetch and the splash spinner.
func (m Model) Init() tea.Cmd {
	load, err := m.machine.Start()
	if err != nil {
		return func() tea.Msg { return loadedMsg{err: err} }
	}
	return tea.Batch(m.spinner.Tick, m.run(load))
}

// Update consumes key presses, fetch results and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case loadedMsg:
		m.cursor = 0
		return m, nil
	case spinner.TickMsg:
		if m.machine.Snapshot().State != domain.LifecycleLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		if key.Matches(typed, m.keys.Quit) {
			return m, tea.Quit
		}
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.machine.Snapshot()
	m.err = nil

	switch snap.State {
	case domain.LifecycleReady:
		if snap.Answered {
			if key.Matches(msg, m.keys.Confirm) {
				if err := m.machine.Advance(); err != nil {
					m.err = err
					return m, nil
				}
				m.cursor = 0
			}
			return m, nil
		}
		options := snap.Question.Options
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(options)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Pick):
			i := int(msg.String()[0] - '1')
			if i < len(options) {
				m.cursor = i
				return m.answer(options[i])
			}
		case key.Matches(msg, m.keys.Confirm):
			return m.answer(options[m.cursor])
		}
	case domain.LifecycleError, domain.LifecycleCompleted:
		if key.Matches(msg, m.keys.Restart) {
			return m.restart()
		}
	}
	return m, nil
}

func (m Model) answer(choice string) (tea.Model, tea.Cmd) {
	if _, err := m.machine.SubmitAnswer(choice); err != nil {
		m.err = err
	}
	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	load, err := m.machine.Restart()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.cursor = 0
	return m, tea.Batch(m.spinner.Tick, m.run(load))
}

// run wraps a fetch as a command so it executes off the UI loop.
func (m Model) run(load quiz.Load) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{err: load(ctx)}
	}
}

// View renders the screen for the current lifecycle state.
func (m Model) View() string {
	snap := m.machine.Snapshot()
	switch snap.State {
	case domain.LifecycleReady:
		return m.renderQuestion(snap)
	case domain.LifecycleError:
		return m.renderError(snap)
	case domain.LifecycleCompleted:
		return m.renderResults(snap)
	default:
		return m.renderSplash()
	}
}
