package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusArchived = "archived"
)

type Client struct {
	ID               uint   `gorm:"primaryKey"`
	CoachID          uint   `gorm:"not null;index"`
	FullName         string `gorm:"not null"`
	Email            string
	Status           string `gorm:"not null;default:active"`
	Notes            string
	TokenHash        string `gorm:"uniqueIndex;not null"`
	TokenGeneratedAt time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func IsActiveClient(client *Client) bool {
	return client != nil && client.Status == ClientStatusActive
}
