package services

import (
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
)

// FollowUpDueDelay is how far out a task is pushed when a coach marks it as
// needing follow-up.
const FollowUpDueDelay = 24 * time.Hour

// Task list filters accepted by the task endpoints.
const (
	TaskFilterAllOpen        = "all-open"
	TaskFilterNew            = "new"
	TaskFilterFollowUpNeeded = "follow_up_needed"
	TaskFilterOverdue        = "overdue"
)

// CanTransition reports whether a task may move from one state to another.
// Resolved is terminal; a resolve request on an already resolved task is
// allowed so the operation stays idempotent.
func CanTransition(fromState string, toState string) bool {
	switch fromState {
	case models.TaskStateNew:
		return toState == models.TaskStateFollowUpNeeded || toState == models.TaskStateResolved
	case models.TaskStateFollowUpNeeded:
		return toState == models.TaskStateFollowUpNeeded || toState == models.TaskStateResolved
	case models.TaskStateResolved:
		return toState == models.TaskStateResolved
	default:
		return false
	}
}

// NormalizeTaskType maps unknown or blank task types to manual.
func NormalizeTaskType(taskType string) string {
	switch strings.TrimSpace(taskType) {
	case models.TaskTypeReviewCheckin:
		return models.TaskTypeReviewCheckin
	default:
		return models.TaskTypeManual
	}
}

// NormalizeTaskPriority maps unknown or blank priorities to medium.
func NormalizeTaskPriority(priority string) string {
	switch strings.TrimSpace(priority) {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh, models.TaskPriorityUrgent:
		return strings.TrimSpace(priority)
	default:
		return models.TaskPriorityMedium
	}
}

// ParseTaskFilter validates a list filter; blank means all-open.
func ParseTaskFilter(filter string) (string, error) {
	switch strings.TrimSpace(filter) {
	case "", TaskFilterAllOpen:
		return TaskFilterAllOpen, nil
	case TaskFilterNew:
		return TaskFilterNew, nil
	case TaskFilterFollowUpNeeded:
		return TaskFilterFollowUpNeeded, nil
	case TaskFilterOverdue:
		return TaskFilterOverdue, nil
	default:
		return "", NewValidationError("filter", "unknown task filter")
	}
}

// IsOverdueTask reports whether an unresolved task's due time has passed.
func IsOverdueTask(task models.Task, now time.Time) bool {
	if task.State == models.TaskStateResolved || task.DueAt == nil {
		return false
	}
	return task.DueAt.Before(now)
}
