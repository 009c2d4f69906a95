package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/services"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation failures carry the offending field; partial task/check-in
// updates report which half failed.
func respondServiceError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidToken) {
		return apiError(c, fiber.StatusUnauthorized, "check-in link is no longer valid, ask your coach for a new one")
	}
	if validationError, ok := services.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationError.Message,
			"field": validationError.Field,
		})
	}
	var partialError *services.PartialUpdateError
	if errors.As(err, &partialError) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":       "update could not be applied as a whole",
			"failed_part": partialError.FailedPart,
		})
	}
	if errors.Is(err, services.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	if errors.Is(err, services.ErrUnauthorized) {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}

// clientBearerToken extracts the per-client submission token from the
// Authorization header.
func clientBearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func parsePagination(c *fiber.Ctx) (offset int, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return (page - 1) * limit, limit
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
