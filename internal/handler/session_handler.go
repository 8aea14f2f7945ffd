package handler

import (
	"strings"

	"exam-quiz/internal/dto"
	"exam-quiz/internal/logger"
	"exam-quiz/internal/service"
	"exam-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionHandler handles quiz session HTTP requests
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateSession godoc
// @Summary Start a quiz session
// @Description Creates a session and starts generating questions in the background. Poll the session until it leaves LOADING.
// @Tags sessions
// @Produce json
// @Success 202 {object} dto.SessionResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	resp, err := h.service.CreateSession(c.Context())
	if err != nil {
		logger.Get().Error("Failed to create quiz session", zap.Error(err))
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetSession godoc
// @Summary Get a quiz session
// @Description Returns the current state, question and score of a session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.Context(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer godoc
// @Summary Answer the current question
// @Description Scores the choice against the current question. Repeating the call before advancing returns the first result.
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Chosen option"
// @Success 200 {object} dto.AnswerResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answer [post]
func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateAnswerRequest(req.Choice); len(errs) > 0 {
		return errs
	}

	id := sessionID(c)
	resp, err := h.service.SubmitAnswer(c.Context(), id, &req)
	if err != nil {
		logger.Get().Debug("Answer rejected", zap.String("session_id", id), zap.Error(err))
		return err
	}
	return c.JSON(resp)
}

// Advance godoc
// @Summary Move to the next question
// @Description Moves past an answered question, or completes the quiz after the last one
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	resp, err := h.service.Advance(c.Context(), sessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Restart godoc
// @Summary Restart a quiz session
// @Description Discards the current attempt and fetches a fresh question set. Allowed after an error or once the quiz is completed.
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 202 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	resp, err := h.service.Restart(c.Context(), sessionID(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// DeleteSession godoc
// @Summary Discard a quiz session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.service.DeleteSession(c.Context(), sessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /healthz [get]
func (h *SessionHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:   "ok",
		Sessions: h.service.Count(),
	})
}

// sessionID prefers the value stored by the validation middleware.
func sessionID(c *fiber.Ctx) string {
	if id, ok := c.Locals("validated_session_id").(string); ok {
		return id
	}
	return strings.TrimSpace(c.Params("id"))
}
