package models

import "time"

const (
	DefaultCheckinDay        = 0
	DefaultDueHour           = 18
	DefaultOverdueAfterHours = 48
)

func DefaultRiskKeywords() []string {
	return []string{"pain", "injury", "hurt", "faint", "dizzy", "purge", "self-harm"}
}

// CoachSettings is a lazily created singleton per coach.
type CoachSettings struct {
	CoachID                  uint     `gorm:"primaryKey"`
	DefaultCheckinDay        int      `gorm:"not null;default:0"`
	DefaultDueHour           int      `gorm:"not null;default:18"`
	DefaultOverdueAfterHours int      `gorm:"not null;default:48"`
	RiskKeywords             []string `gorm:"serializer:json"`
	UpdatedAt                time.Time
}

func DefaultCoachSettings(coachID uint) CoachSettings {
	return CoachSettings{
		CoachID:                  coachID,
		DefaultCheckinDay:        DefaultCheckinDay,
		DefaultDueHour:           DefaultDueHour,
		DefaultOverdueAfterHours: DefaultOverdueAfterHours,
		RiskKeywords:             DefaultRiskKeywords(),
	}
}
