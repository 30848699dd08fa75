package handlers

import (
	"encoding/json"
	"errors"

	"github.com/dailytrivia/backend/database"
	"github.com/dailytrivia/backend/models"
	"github.com/dailytrivia/backend/services"
	"github.com/gofiber/fiber/v2"
)

type QuestionHandler struct {
	Service    *services.QuestionService
	Migrations *database.MigrationRunner
}

func NewQuestionHandler(service *services.QuestionService, migrations *database.MigrationRunner) *QuestionHandler {
	return &QuestionHandler{Service: service, Migrations: migrations}
}

// GetTodayQuestions returns the questions scheduled for the current day.
// Migrations are applied lazily on the first request that needs the store.
func (h *QuestionHandler) GetTodayQuestions(c *fiber.Ctx) error {
	if err := h.Migrations.EnsureReady(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	questions, err := h.Service.TodayQuestions(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if len(questions) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No questions available for today",
		})
	}

	return c.JSON(fiber.Map{"data": questions})
}

// CreateQuestions accepts an array of question inputs and persists them
func (h *QuestionHandler) CreateQuestions(c *fiber.Ctx) error {
	var inputs []models.QuestionInput
	if err := json.Unmarshal(c.Body(), &inputs); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Request body must be an array of questions",
		})
	}

	if err := h.Migrations.EnsureReady(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	inserted, err := h.Service.InsertQuestions(c.Context(), inputs)
	if err != nil {
		if errors.Is(err, services.ErrInvalidQuestionInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to insert questions",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"data": inserted})
}
