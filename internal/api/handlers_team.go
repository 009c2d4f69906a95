package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListTeamCoaches(c *fiber.Ctx) error {
	coaches, err := handler.authService.ListCoaches()
	if err != nil {
		return respondServiceError(c, err)
	}

	team := make([]fiber.Map, 0, len(coaches))
	for _, coach := range coaches {
		team = append(team, coachResponse(coach))
	}
	return c.JSON(fiber.Map{"coaches": team})
}

// CreateTeamInvite mints an invite link. The raw token is in the response
// exactly once; only its hash is stored.
func (handler *Handler) CreateTeamInvite(c *fiber.Ctx) error {
	coach, ok := currentCoach(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input inviteInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	invite, rawToken, err := handler.authService.CreateInvite(coach.ID, input.Email, input.Role, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"invite": fiber.Map{
			"id":         invite.PublicID,
			"email":      invite.Email,
			"role":       invite.Role,
			"expires_at": invite.ExpiresAt,
		},
		"token": rawToken,
	})
}
