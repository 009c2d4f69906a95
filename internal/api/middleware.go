package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/services"
)

const (
	authCookieName  = "coachdesk_auth"
	contextCoachKey = "current_coach"
)

func currentCoach(c *fiber.Ctx) (*models.Coach, bool) {
	coach, ok := c.Locals(contextCoachKey).(*models.Coach)
	return coach, ok
}

// currentScope narrows every roster query to the session coach. Admins see
// every roster.
func currentScope(c *fiber.Ctx) (services.CoachScope, bool) {
	coach, ok := currentCoach(c)
	if !ok {
		return services.CoachScope{}, false
	}
	return services.CoachScope{CoachID: coach.ID, Admin: models.IsAdminCoach(coach)}, true
}
