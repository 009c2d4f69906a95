package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/services"
)

func (handler *Handler) ListClients(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	offset, limit := parsePagination(c)
	overviews, total, err := handler.clientService.List(services.ClientListQuery{
		Scope:  scope,
		Status: c.Query("status"),
		Search: c.Query("search"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"clients": overviews,
		"total":   total,
	})
}

// CreateClient returns the raw submission token exactly once; only its hash
// is stored.
func (handler *Handler) CreateClient(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input clientInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	client, rawToken, err := handler.clientService.Create(scope, services.CreateClientInput{
		FullName: input.FullName,
		Email:    input.Email,
		Notes:    input.Notes,
	}, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"client": client,
		"token":  rawToken,
	})
}

func (handler *Handler) GetClient(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	detail, err := handler.clientService.Detail(scope, clientID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(detail)
}

func (handler *Handler) UpdateClient(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	var input clientPatchInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	client, err := handler.clientService.Update(scope, clientID, services.UpdateClientInput{
		FullName: input.FullName,
		Email:    input.Email,
		Notes:    input.Notes,
	}, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(client)
}

func (handler *Handler) ArchiveClient(c *fiber.Ctx) error {
	return handler.setClientStatus(c, handler.clientService.Archive)
}

func (handler *Handler) UnarchiveClient(c *fiber.Ctx) error {
	return handler.setClientStatus(c, handler.clientService.Unarchive)
}

func (handler *Handler) setClientStatus(c *fiber.Ctx, transition func(services.CoachScope, uint, time.Time) (models.Client, error)) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	client, err := transition(scope, clientID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(client)
}

// RegenerateClientToken rotates the submission token. The previous link stops
// working immediately.
func (handler *Handler) RegenerateClientToken(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid client id")
	}

	rawToken, err := handler.clientService.RegenerateToken(scope, clientID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"token": rawToken})
}
