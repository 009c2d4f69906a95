package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/services"
)

func (handler *Handler) ListTasks(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	offset, limit := parsePagination(c)
	tasks, total, err := handler.taskService.List(scope, c.Query("filter"), offset, limit, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"tasks": tasks,
		"total": total,
	})
}

func (handler *Handler) UrgentTasks(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	offset, limit := parsePagination(c)
	tasks, total, err := handler.taskService.UrgentLane(scope, offset, limit, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"tasks": tasks,
		"total": total,
	})
}

func (handler *Handler) CreateTask(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input manualTaskInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	task, err := handler.taskService.CreateManual(scope, services.ManualTaskInput{
		ClientID: input.ClientID,
		Title:    input.Title,
		Priority: input.Priority,
		DueAt:    input.DueAt,
		Notes:    input.Notes,
	}, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (handler *Handler) UpdateTask(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid task id")
	}

	var input taskPatchInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	task, err := handler.taskService.UpdateNotes(scope, taskID, input.Notes, input.DueAt)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(task)
}

func (handler *Handler) ResolveTask(c *fiber.Ctx) error {
	return handler.transitionTask(c, handler.taskService.Resolve)
}

func (handler *Handler) FollowUpTask(c *fiber.Ctx) error {
	return handler.transitionTask(c, handler.taskService.MarkFollowUp)
}

// MarkTaskReviewed resolves a review task and flips its check-in to reviewed
// in the same transaction.
func (handler *Handler) MarkTaskReviewed(c *fiber.Ctx) error {
	return handler.transitionTask(c, handler.taskService.MarkReviewed)
}

func (handler *Handler) transitionTask(c *fiber.Ctx, transition func(services.CoachScope, uint, time.Time) (models.Task, error)) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid task id")
	}

	task, err := transition(scope, taskID, time.Now().In(handler.location))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(task)
}

func (handler *Handler) BulkResolveTasks(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input bulkTaskInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	if err := handler.taskService.BulkResolve(scope, input.TaskIDs, time.Now().In(handler.location)); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) BulkSetTasksDue(c *fiber.Ctx) error {
	scope, ok := currentScope(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input bulkTaskInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.DueAt == nil {
		return apiError(c, fiber.StatusBadRequest, "due_at is required")
	}

	if err := handler.taskService.BulkSetDue(scope, input.TaskIDs, *input.DueAt); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
