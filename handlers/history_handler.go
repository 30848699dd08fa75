package handlers

import (
	"errors"

	"github.com/dailytrivia/backend/services"
	"github.com/dailytrivia/backend/shared"
	"github.com/gofiber/fiber/v2"
)

// Fallback strings rendered by the front end when no events can be served.
// Error responses always carry text/html alongside the machine-readable
// error, so the UI degrades without branching per error kind.
const (
	noEventsText    = "Come back tomorrow for new historical events."
	fetchFailedText = "Failed to load historical events. Please try again."
)

type HistoryHandler struct {
	Service *services.HistoryService
}

func NewHistoryHandler(service *services.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: service}
}

// GetTodayHistory returns the full ordered event list for the current day.
// X-Cache reports whether the daily cache served the request.
func (h *HistoryHandler) GetTodayHistory(c *fiber.Ctx) error {
	events, cacheHit, err := h.Service.TodayEvents(c.Context())
	if err != nil {
		return historyError(c, err)
	}

	c.Set("Cache-Control", "public, max-age=86400")
	if cacheHit {
		c.Set("X-Cache", "HIT")
	} else {
		c.Set("X-Cache", "MISS")
	}
	return c.JSON(events)
}

// GetRandomHistory returns one event picked uniformly at random from today's
// events. Never cached by clients; every request re-rolls.
func (h *HistoryHandler) GetRandomHistory(c *fiber.Ctx) error {
	event, err := h.Service.RandomEvent(c.Context())
	if err != nil {
		return historyError(c, err)
	}

	setNoStoreHeaders(c)
	return c.JSON(event)
}

func historyError(c *fiber.Ctx, err error) error {
	setNoStoreHeaders(c)

	if errors.Is(err, shared.ErrNoEvents) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No events available",
			"text":  noEventsText,
			"html":  "<p>" + noEventsText + "</p>",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Failed to fetch history",
		"text":    fetchFailedText,
		"html":    "<p>" + fetchFailedText + "</p>",
		"details": err.Error(),
	})
}

func setNoStoreHeaders(c *fiber.Ctx) {
	c.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")
}
