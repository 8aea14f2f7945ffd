// @title Exam Quiz API
// @version 1.0
// @description Generates ACIO exam practice quizzes and runs them one question at a time.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "exam-quiz/cmd/api/docs"
	"exam-quiz/internal/adapter/quizgen"
	"exam-quiz/internal/config"
	"exam-quiz/internal/handler"
	"exam-quiz/internal/logger"
	"exam-quiz/internal/middleware"
	"exam-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if cfg.Gemini.CurrentAPIKey() == "" {
		appLogger.Warn("No Gemini API key configured; quizzes will fail until GEMINI_API_KEY is set")
	}

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
		appLogger.Fatal("Failed to create question source", zap.Error(err))
	}

	registry := service.NewSessionRegistry(source, cfg.Session, appLogger.Named("sessions"))
	sessionHandler := handler.NewSessionHandler(registry)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app, sessionHandler)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})

	g.Go(func() error {
		return registry.RunSweeper(gctx)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		registry.Close()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
