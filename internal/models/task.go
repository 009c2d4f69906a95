package models

import "time"

const (
	TaskTypeReviewCheckin = "review_checkin"
	TaskTypeManual        = "manual"
)

const (
	TaskStateNew            = "new"
	TaskStateFollowUpNeeded = "follow_up_needed"
	TaskStateResolved       = "resolved"
)

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

type Task struct {
	ID         uint       `gorm:"primaryKey"`
	CoachID    uint       `gorm:"not null;index"`
	ClientID   uint       `gorm:"not null;index"`
	CheckinID  *uint      `gorm:"index"`
	Type       string     `gorm:"not null;default:manual"`
	Title      string     `gorm:"not null"`
	Priority   string     `gorm:"not null;default:medium"`
	State      string     `gorm:"not null;default:new"`
	DueAt      *time.Time
	Notes      string
	CreatedAt  time.Time  `gorm:"not null"`
	ResolvedAt *time.Time
}

func IsResolvedTask(task *Task) bool {
	return task != nil && task.State == TaskStateResolved
}
