package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/services"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	coach, ok := currentCoach(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	settings, err := handler.settingsService.Load(coach.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(settings)
}

func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	coach, ok := currentCoach(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input settingsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	settings, err := handler.settingsService.Update(coach.ID, services.SettingsInput{
		DefaultCheckinDay:        input.DefaultCheckinDay,
		DefaultDueHour:           input.DefaultDueHour,
		DefaultOverdueAfterHours: input.DefaultOverdueAfterHours,
		RiskKeywords:             input.RiskKeywords,
	}, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(settings)
}
