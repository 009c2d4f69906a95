package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	coach, err := handler.authService.Register(input.Email, input.Password, input.DisplayName, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationClosed):
			return apiError(c, fiber.StatusForbidden, "registration is closed, ask an admin for an invite")
		case errors.Is(err, services.ErrAuthCredentialsInvalid):
			return apiError(c, fiber.StatusBadRequest, "a valid email and password are required")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters with upper, lower and a digit")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, &coach, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(coachResponse(coach))
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := time.Now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts, try again later")
	}

	var input credentialsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	coach, err := handler.authService.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrAuthCredentialsInvalid) {
			handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
			return apiError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	handler.loginLimiter.reset(limiterKey)
	if err := handler.setAuthCookie(c, &coach, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(coachResponse(coach))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) AcceptInvite(c *fiber.Ctx) error {
	var input acceptInviteInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	coach, err := handler.authService.AcceptInvite(input.Token, input.Password, input.DisplayName, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInviteInvalid):
			return apiError(c, fiber.StatusBadRequest, "invite is invalid or has expired")
		case errors.Is(err, services.ErrWeakPassword):
			return apiError(c, fiber.StatusBadRequest, "password must be at least 8 characters with upper, lower and a digit")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to accept invite")
	}

	if err := handler.setAuthCookie(c, &coach, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(coachResponse(coach))
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	coach, ok := currentCoach(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(coachResponse(*coach))
}

func coachResponse(coach models.Coach) fiber.Map {
	return fiber.Map{
		"id":           coach.ID,
		"email":        coach.Email,
		"display_name": coach.DisplayName,
		"role":         coach.Role,
	}
}
