package tui

import (
	"fmt"
	"strings"

	"exam-quiz/internal/domain"
	"exam-quiz/internal/quiz"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title    lipgloss.Style
	subtle   lipgloss.Style
	accent   lipgloss.Style
	selected lipgloss.Style
	correct  lipgloss.Style
	wrong    lipgloss.Style
	errText  lipgloss.Style
	card     lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain.Bold(true), subtle: plain, accent: plain, selected: plain.Bold(true),
			correct: plain, wrong: plain, errText: plain, card: plain.Padding(1, 2),
		}
	}
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		subtle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
		selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		correct:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		wrong:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		errText:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2),
	}
}

func (m Model) frame(body string) string {
	card := m.styles.card
	if m.width > 8 {
		card = card.Width(min(m.width-4, 100))
	}
	return card.Render(body) + "\n"
}

func (m Model) renderSplash() string {
	return m.frame(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("ACIO Exam Prep"),
		m.styles.subtle.Render("Your AI-powered study partner"),
		"",
		m.spinner.View()+" Generating your personalized quiz...",
		"",
		m.styles.subtle.Render(helpLine(m.keys.Quit)),
	))
}

func (m Model) renderQuestion(snap quiz.Snapshot) string {
	var b strings.Builder
	b.WriteString(m.styles.accent.Render(fmt.Sprintf("Question %d of %d", snap.Number(), snap.Total)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.title.Render(snap.Question.Prompt))
	b.WriteString("\n\n")

	for i, opt := range snap.Question.Options {
		b.WriteString(m.renderOption(snap, i, opt))
		b.WriteString("\n")
	}

	if snap.Answered {
		b.WriteString("\n")
		if snap.Answer.Correct {
			b.WriteString(m.styles.correct.Render("Correct!"))
		} else {
			b.WriteString(m.styles.wrong.Render("Incorrect. The answer is " + snap.Answer.CorrectAnswer + "."))
		}
		b.WriteString("\n\n")
		b.WriteString(m.styles.title.Render("Explanation:"))
		b.WriteString("\n")
		b.WriteString(snap.Answer.Explanation)
		b.WriteString("\n\n")
		label := "Next Question"
		if snap.IsLast() {
			label = "Finish Quiz"
		}
		b.WriteString(m.styles.selected.Render("[ " + label + " ]"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.subtle.Render(helpLine(m.keys.Confirm, m.keys.Quit)))
	} else {
		b.WriteString("\n")
		b.WriteString(m.styles.subtle.Render(helpLine(m.keys.Up, m.keys.Down, m.keys.Pick, m.keys.Confirm, m.keys.Quit)))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.subtle.Render(fmt.Sprintf("Score: %d", snap.Score)))
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.errText.Render(domain.UserMessage(m.err)))
	}
	return m.frame(b.String())
}

func (m Model) renderOption(snap quiz.Snapshot, i int, opt string) string {
	line := fmt.Sprintf("%d. %s", i+1, opt)
	if !snap.Answered {
		if i == m.cursor {
			return m.styles.selected.Render("> " + line)
		}
		return "  " + line
	}
	switch {
	case opt == snap.Answer.CorrectAnswer:
		return m.styles.correct.Render("✓ " + line)
	case opt == snap.Answer.Choice:
		return m.styles.wrong.Render("✗ " + line)
	default:
		return m.styles.subtle.Render("  " + line)
	}
}

func (m Model) renderError(snap quiz.Snapshot) string {
	return m.frame(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.errText.Render("An Error Occurred"),
		"",
		snap.Error,
		"",
		m.styles.selected.Render("[ Try Again ]"),
		"",
		m.styles.subtle.Render(helpLine(m.keys.Restart, m.keys.Quit)),
	))
}

func (m Model) renderResults(snap quiz.Snapshot) string {
	pct := snap.Percentage()
	return m.frame(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("Quiz Complete!"),
		"You've finished the quiz.",
		"",
		"Your Score:",
		m.styles.title.Render(fmt.Sprintf("%d / %d", snap.Score, snap.Total)),
		m.styles.accent.Render(fmt.Sprintf("%d%%", pct)),
		"",
		m.styles.subtle.Render(quiz.Feedback(pct)),
		"",
		m.styles.selected.Render("[ Take Another Quiz ]"),
		"",
		m.styles.subtle.Render(helpLine(m.keys.Restart, m.keys.Quit)),
	))
}
