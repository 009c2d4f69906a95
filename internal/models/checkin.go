package models

import "time"

const (
	CheckinStatusNew      = "new"
	CheckinStatusReviewed = "reviewed"
)

// CheckinFocusAreaCount is the fixed number of next-week focus slots.
const CheckinFocusAreaCount = 3

// CheckinPayload is the canonical weekly self-report shape. Key aliases from
// older client builds are normalized into this shape at the ingestion boundary.
type CheckinPayload struct {
	Wins             string    `json:"wins"`
	Struggles        string    `json:"struggles"`
	AdherencePercent int       `json:"adherence_percent"`
	TrainingSessions int       `json:"training_sessions"`
	AvgSteps         int       `json:"avg_steps"`
	AvgSleepHours    float64   `json:"avg_sleep_hours"`
	FocusAreas       []string  `json:"focus_areas"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type Checkin struct {
	ID          uint           `gorm:"primaryKey"`
	ClientID    uint           `gorm:"not null;index"`
	CoachID     uint           `gorm:"not null;index"`
	WeekStart   time.Time      `gorm:"type:date;not null"`
	WeekEnd     time.Time      `gorm:"type:date;not null"`
	Payload     CheckinPayload `gorm:"serializer:json"`
	RiskFlags   []string       `gorm:"serializer:json"`
	Status      string         `gorm:"not null;default:new"`
	SubmittedAt time.Time      `gorm:"not null"`
}
