package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Dashboard(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.dashboardService.Build(scope, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}
