package models

import "time"

const (
	RoleAdmin = "admin"
	RoleCoach = "coach"
)

type Coach struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	DisplayName  string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:coach"`
	CreatedAt    time.Time `gorm:"not null"`
}

func IsAdminCoach(coach *Coach) bool {
	return coach != nil && coach.Role == RoleAdmin
}
