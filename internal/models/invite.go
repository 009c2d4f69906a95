package models

import "time"

const InviteTTL = 7 * 24 * time.Hour

type CoachInvite struct {
	ID         uint       `gorm:"primaryKey"`
	PublicID   string     `gorm:"uniqueIndex;not null"`
	Email      string     `gorm:"not null"`
	Role       string     `gorm:"not null;default:coach"`
	TokenHash  string     `gorm:"uniqueIndex;not null"`
	InvitedBy  uint       `gorm:"not null"`
	ExpiresAt  time.Time  `gorm:"not null"`
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

func IsUsableInvite(invite *CoachInvite, now time.Time) bool {
	return invite != nil && invite.AcceptedAt == nil && now.Before(invite.ExpiresAt)
}
