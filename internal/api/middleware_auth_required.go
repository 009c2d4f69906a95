package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/models"
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	coach, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextCoachKey, coach)
	return c.Next()
}

// AdminOnly guards team management routes. It runs after AuthRequired.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	coach, ok := currentCoach(c)
	if !ok || !models.IsAdminCoach(coach) {
		return apiError(c, fiber.StatusForbidden, "admin access required")
	}
	return c.Next()
}
