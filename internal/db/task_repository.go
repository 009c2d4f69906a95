package db

import (
	"errors"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/services"
	"gorm.io/gorm"
)

type TaskRepository struct {
	database *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{database: database}
}

func (repo *TaskRepository) scoped(scope services.CoachScope) *gorm.DB {
	query := repo.database.Model(&models.Task{})
	if !scope.Admin {
		query = query.Where("coach_id = ?", scope.CoachID)
	}
	return query
}

func (repo *TaskRepository) ListPage(listQuery services.TaskListQuery) ([]models.Task, int64, error) {
	query := repo.scoped(listQuery.Scope)
	if listQuery.ExcludeResolved {
		query = query.Where("state <> ?", models.TaskStateResolved)
	}
	if len(listQuery.States) > 0 {
		query = query.Where("state IN ?", listQuery.States)
	}
	if listQuery.DueBefore != nil {
		query = query.Where("due_at IS NOT NULL AND due_at < ?", *listQuery.DueBefore)
	}
	if listQuery.UrgentOrDue {
		query = query.Where(
			"priority = ? OR (due_at IS NOT NULL AND due_at < ?)",
			models.TaskPriorityUrgent, listQuery.Now,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tasks := make([]models.Task, 0)
	page := query.Order("created_at DESC, id DESC")
	if listQuery.Offset > 0 {
		page = page.Offset(listQuery.Offset)
	}
	if listQuery.Limit > 0 {
		page = page.Limit(listQuery.Limit)
	}
	if err := page.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (repo *TaskRepository) FindByID(taskID uint) (models.Task, bool, error) {
	var task models.Task
	err := repo.database.First(&task, taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Task{}, false, nil
	}
	if err != nil {
		return models.Task{}, false, err
	}
	return task, true, nil
}

func (repo *TaskRepository) Create(task *models.Task) error {
	return repo.database.Create(task).Error
}

func (repo *TaskRepository) UpdateByID(taskID uint, updates map[string]any) error {
	return repo.database.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates).Error
}

// Resolve is idempotent: an already-resolved task keeps its original
// resolved_at and state.
func (repo *TaskRepository) Resolve(taskID uint, resolvedAt time.Time) error {
	return repo.database.Model(&models.Task{}).
		Where("id = ? AND state <> ?", taskID, models.TaskStateResolved).
		Updates(map[string]any{
			"state":       models.TaskStateResolved,
			"resolved_at": resolvedAt,
		}).Error
}

func (repo *TaskRepository) BulkResolve(scope services.CoachScope, taskIDs []uint, resolvedAt time.Time) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return repo.scoped(scope).
		Where("id IN ? AND state <> ?", taskIDs, models.TaskStateResolved).
		Updates(map[string]any{
			"state":       models.TaskStateResolved,
			"resolved_at": resolvedAt,
		}).Error
}

func (repo *TaskRepository) BulkSetDue(scope services.CoachScope, taskIDs []uint, dueAt time.Time) error {
	if len(taskIDs) == 0 {
		return nil
	}
	return repo.scoped(scope).
		Where("id IN ? AND state <> ?", taskIDs, models.TaskStateResolved).
		Update("due_at", dueAt).Error
}

// ResolveWithReviewedCheckin resolves a task and marks its linked check-in
// reviewed inside one transaction. The returned error names the half that
// failed; on error neither write is kept.
func (repo *TaskRepository) ResolveWithReviewedCheckin(task *models.Task, resolvedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if task.State != models.TaskStateResolved {
			if err := tx.Model(&models.Task{}).
				Where("id = ? AND state <> ?", task.ID, models.TaskStateResolved).
				Updates(map[string]any{
					"state":       models.TaskStateResolved,
					"resolved_at": resolvedAt,
				}).Error; err != nil {
				return &services.PartialUpdateError{FailedPart: "task", Cause: err}
			}
		}
		if task.CheckinID == nil {
			return nil
		}
		if err := tx.Model(&models.Checkin{}).
			Where("id = ?", *task.CheckinID).
			Update("status", models.CheckinStatusReviewed).Error; err != nil {
			return &services.PartialUpdateError{FailedPart: "check-in", Cause: err}
		}
		return nil
	})
}

func (repo *TaskRepository) OpenCountsByClients(clientIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(clientIDs))
	if len(clientIDs) == 0 {
		return counts, nil
	}

	rows := make([]struct {
		ClientID uint  `gorm:"column:client_id"`
		Total    int64 `gorm:"column:total"`
	}, 0)
	if err := repo.database.Model(&models.Task{}).
		Select("client_id, count(*) AS total").
		Where("client_id IN ? AND state <> ?", clientIDs, models.TaskStateResolved).
		Group("client_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ClientID] = row.Total
	}
	return counts, nil
}

func (repo *TaskRepository) ListOpenByClient(clientID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	if err := repo.database.
		Where("client_id = ? AND state <> ?", clientID, models.TaskStateResolved).
		Order("created_at DESC, id DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (repo *TaskRepository) CountByState(scope services.CoachScope, state string) (int64, error) {
	var count int64
	if err := repo.scoped(scope).Where("state = ?", state).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
