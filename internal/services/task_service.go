package services

import (
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
)

// TaskListQuery narrows TaskRepository.ListPage. States, DueBefore and
// UrgentOrDue are combined with AND; Now anchors the urgent-lane due check.
type TaskListQuery struct {
	Scope           CoachScope
	States          []string
	ExcludeResolved bool
	DueBefore       *time.Time
	UrgentOrDue     bool
	Now             time.Time
	Offset          int
	Limit           int
}

type TaskRepository interface {
	ListPage(listQuery TaskListQuery) ([]models.Task, int64, error)
	FindByID(taskID uint) (models.Task, bool, error)
	Create(task *models.Task) error
	UpdateByID(taskID uint, updates map[string]any) error
	Resolve(taskID uint, resolvedAt time.Time) error
	BulkResolve(scope CoachScope, taskIDs []uint, resolvedAt time.Time) error
	BulkSetDue(scope CoachScope, taskIDs []uint, dueAt time.Time) error
	ResolveWithReviewedCheckin(task *models.Task, resolvedAt time.Time) error
}

type TaskClientRepository interface {
	FindByID(clientID uint) (models.Client, bool, error)
}

// ManualTaskInput is a coach-authored task.
type ManualTaskInput struct {
	ClientID uint
	Title    string
	Priority string
	DueAt    *time.Time
	Notes    string
}

// TaskService is the coach inbox: it lists, routes, and closes the tasks a
// roster generates.
type TaskService struct {
	tasks   TaskRepository
	clients TaskClientRepository
}

func NewTaskService(tasks TaskRepository, clients TaskClientRepository) *TaskService {
	return &TaskService{
		tasks:   tasks,
		clients: clients,
	}
}

// List returns one inbox page for the given filter, newest first, with the
// exact total for that filter.
func (service *TaskService) List(scope CoachScope, filter string, offset int, limit int, now time.Time) ([]models.Task, int64, error) {
	parsed, err := ParseTaskFilter(filter)
	if err != nil {
		return nil, 0, err
	}

	listQuery := TaskListQuery{Scope: scope, Offset: offset, Limit: limit}
	switch parsed {
	case TaskFilterAllOpen:
		listQuery.ExcludeResolved = true
	case TaskFilterNew:
		listQuery.States = []string{models.TaskStateNew}
	case TaskFilterFollowUpNeeded:
		listQuery.States = []string{models.TaskStateFollowUpNeeded}
	case TaskFilterOverdue:
		listQuery.ExcludeResolved = true
		listQuery.DueBefore = &now
	}
	return service.tasks.ListPage(listQuery)
}

// UrgentLane lists unresolved tasks that are urgent or already past due.
func (service *TaskService) UrgentLane(scope CoachScope, offset int, limit int, now time.Time) ([]models.Task, int64, error) {
	return service.tasks.ListPage(TaskListQuery{
		Scope:           scope,
		ExcludeResolved: true,
		UrgentOrDue:     true,
		Now:             now,
		Offset:          offset,
		Limit:           limit,
	})
}

// CreateManual files a coach-authored task against a roster client.
func (service *TaskService) CreateManual(scope CoachScope, input ManualTaskInput, now time.Time) (models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return models.Task{}, NewValidationError("title", "title is required")
	}

	client, found, err := service.clients.FindByID(input.ClientID)
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, ErrNotFound
	}
	if !scope.CanAccess(client.CoachID) {
		return models.Task{}, ErrUnauthorized
	}

	task := models.Task{
		CoachID:   client.CoachID,
		ClientID:  client.ID,
		Type:      models.TaskTypeManual,
		Title:     title,
		Priority:  NormalizeTaskPriority(input.Priority),
		State:     models.TaskStateNew,
		DueAt:     input.DueAt,
		Notes:     strings.TrimSpace(input.Notes),
		CreatedAt: now,
	}
	if err := service.tasks.Create(&task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// Resolve closes a task. Resolving an already resolved task is a no-op that
// keeps the original resolved_at.
func (service *TaskService) Resolve(scope CoachScope, taskID uint, now time.Time) (models.Task, error) {
	task, err := service.fetchScoped(scope, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if task.State == models.TaskStateResolved {
		return task, nil
	}

	if err := service.tasks.Resolve(task.ID, now); err != nil {
		return models.Task{}, err
	}
	task.State = models.TaskStateResolved
	task.ResolvedAt = &now
	return task, nil
}

// MarkFollowUp parks a task for later and schedules it a day out. Calling it
// again pushes the due time forward from now.
func (service *TaskService) MarkFollowUp(scope CoachScope, taskID uint, now time.Time) (models.Task, error) {
	task, err := service.fetchScoped(scope, taskID)
	if err != nil {
		return models.Task{}, err
	}
	if !CanTransition(task.State, models.TaskStateFollowUpNeeded) {
		return models.Task{}, NewValidationError("state", "resolved tasks cannot be reopened")
	}

	dueAt := now.Add(FollowUpDueDelay)
	if err := service.tasks.UpdateByID(task.ID, map[string]any{
		"state":  models.TaskStateFollowUpNeeded,
		"due_at": dueAt,
	}); err != nil {
		return models.Task{}, err
	}
	task.State = models.TaskStateFollowUpNeeded
	task.DueAt = &dueAt
	return task, nil
}

// MarkReviewed resolves a review task and flips its linked check-in to
// reviewed in one transaction. A task without a linked check-in degrades to a
// plain resolve.
func (service *TaskService) MarkReviewed(scope CoachScope, taskID uint, now time.Time) (models.Task, error) {
	task, err := service.fetchScoped(scope, taskID)
	if err != nil {
		return models.Task{}, err
	}

	if err := service.tasks.ResolveWithReviewedCheckin(&task, now); err != nil {
		return models.Task{}, err
	}
	if task.State != models.TaskStateResolved {
		task.State = models.TaskStateResolved
		task.ResolvedAt = &now
	}
	return task, nil
}

// UpdateNotes patches a task's notes and due time. Fields left nil keep
// their stored value.
func (service *TaskService) UpdateNotes(scope CoachScope, taskID uint, notes *string, dueAt *time.Time) (models.Task, error) {
	task, err := service.fetchScoped(scope, taskID)
	if err != nil {
		return models.Task{}, err
	}

	updates := map[string]any{}
	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		updates["notes"] = trimmed
		task.Notes = trimmed
	}
	if dueAt != nil {
		updates["due_at"] = *dueAt
		task.DueAt = dueAt
	}
	if len(updates) == 0 {
		return task, nil
	}
	if err := service.tasks.UpdateByID(task.ID, updates); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// BulkResolve closes every listed task still open within the scope's roster.
func (service *TaskService) BulkResolve(scope CoachScope, taskIDs []uint, now time.Time) error {
	return service.tasks.BulkResolve(scope, taskIDs, now)
}

// BulkSetDue reschedules every listed open task within the scope's roster.
func (service *TaskService) BulkSetDue(scope CoachScope, taskIDs []uint, dueAt time.Time) error {
	return service.tasks.BulkSetDue(scope, taskIDs, dueAt)
}

func (service *TaskService) fetchScoped(scope CoachScope, taskID uint) (models.Task, error) {
	task, found, err := service.tasks.FindByID(taskID)
	if err != nil {
		return models.Task{}, err
	}
	if !found {
		return models.Task{}, ErrNotFound
	}
	if !scope.CanAccess(task.CoachID) {
		return models.Task{}, ErrUnauthorized
	}
	return task, nil
}
