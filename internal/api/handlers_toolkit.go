package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetToolkit loads the client's synced toolkit state. The load path always
// runs the schema migration, so devices that last synced on the legacy
// layout read back current-version state.
func (handler *Handler) GetToolkit(c *fiber.Ctx) error {
	state, err := handler.toolkitService.Load(clientBearerToken(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(state)
}

func (handler *Handler) SaveToolkit(c *fiber.Ctx) error {
	state, err := handler.toolkitService.Save(clientBearerToken(c), c.Body(), time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(state)
}
