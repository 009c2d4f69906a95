package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ExportClientCSV(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	data, err := handler.exportService.BuildCheckinCSV(scope, clientID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=checkins-%d.csv", clientID))
	return c.Send(data)
}

func (handler *Handler) ExportClientJSON(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	state, err := handler.exportService.StateForExport(scope, clientID)
	if err != nil {
		return respondServiceError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=toolkit-%d.json", clientID))
	return c.JSON(state)
}
