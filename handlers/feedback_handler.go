package handlers

import (
	"github.com/dailytrivia/backend/database"
	"github.com/dailytrivia/backend/models"
	"github.com/dailytrivia/backend/services"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	Service    *services.FeedbackService
	Validator  *services.EmailValidator
	Migrations *database.MigrationRunner
}

func NewFeedbackHandler(service *services.FeedbackService, validator *services.EmailValidator, migrations *database.MigrationRunner) *FeedbackHandler {
	return &FeedbackHandler{Service: service, Validator: validator, Migrations: migrations}
}

// SubmitFeedback validates and stores one feedback entry
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var input models.FeedbackInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Name == "" || input.Email == "" || input.Feedback == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	result := h.Validator.Validate(c.Context(), input.Email)
	if !result.Valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Invalid email address",
			"reason": result.Reason,
		})
	}

	if err := h.Migrations.EnsureReady(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.Service.SubmitFeedback(c.Context(), &input); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit feedback",
		})
	}

	return c.JSON(fiber.Map{"message": "Feedback submitted successfully"})
}

// ListFeedback returns the most recent feedback entries for review
func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	if err := h.Migrations.EnsureReady(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	entries, err := h.Service.RecentFeedback(c.Context(), 50)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"data": entries})
}
