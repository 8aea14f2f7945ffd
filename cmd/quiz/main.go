package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"exam-quiz/internal/adapter/quizgen"
	"exam-quiz/internal/config"
	"exam-quiz/internal/logger"
	"exam-quiz/internal/quiz"
	"exam-quiz/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	noColor := flag.Bool("no-color", false, "disable colors")
	flag.Parse()

	if err := run(*logPath, *noColor); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(logPath string, noColor bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	appLogger := logger.New(cfg.Logger, out)
	logger.Set(appLogger)
	defer logger.Sync()

	source, err := quizgen.NewGeminiQuestionSource(
		quizgen.NewGeminiModelFactory(cfg.Gemini.CurrentAPIKey, cfg.Gemini.Model),
		quizgen.Options{
			Model:         cfg.Gemini.Model,
			Temperature:   cfg.Gemini.Temperature,
			QuestionCount: cfg.Quiz.QuestionCount,
			Policy:        quizgen.ValidationPolicy(cfg.Quiz.Validation),
			Timeout:       cfg.Gemini.Timeout,
		},
		appLogger.Named("quizgen"),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	machine := quiz.NewMachine(source, appLogger.Named("quiz"))
	model := tui.NewModel(ctx, machine, tui.Options{NoColor: noColor})

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		appLogger.Error("Quiz UI exited with error", zap.Error(err))
		return err
	}
	return nil
}
