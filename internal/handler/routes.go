package handler

import (
	"exam-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the session API and the liveness probe on app.
func RegisterRoutes(app *fiber.App, h *SessionHandler) {
	validated := middleware.NewValidationMiddleware().ValidateSessionID()

	app.Get("/healthz", h.Health)

	api := app.Group("/api")
	api.Post("/sessions", h.CreateSession)
	api.Get("/sessions/:id", validated, h.GetSession)
	api.Delete("/sessions/:id", validated, h.DeleteSession)
	api.Post("/sessions/:id/answer", validated, h.SubmitAnswer)
	api.Post("/sessions/:id/next", validated, h.Advance)
	api.Post("/sessions/:id/restart", validated, h.Restart)
}
