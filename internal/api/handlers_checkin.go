package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/services"
)

// SubmitCheckin is the public client-side endpoint. It authenticates with the
// per-client bearer token, never with a coach session.
func (handler *Handler) SubmitCheckin(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.submitLimiter.tooManyRecent(limiterKey, now, submitAttemptsLimit, submitAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many submissions, try again later")
	}

	var submission services.CheckinSubmission
	if err := c.BodyParser(&submission); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	checkin, task, err := handler.checkinService.Submit(clientBearerToken(c), submission, now, handler.location)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			handler.submitLimiter.addFailure(limiterKey, now, submitAttemptsWindow)
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"checkin": checkin,
		"task":    task,
	})
}
