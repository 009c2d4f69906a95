package services

import (
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
)

type SettingsRepository interface {
	FindByCoach(coachID uint) (models.CoachSettings, bool, error)
	Save(settings *models.CoachSettings) error
}

// SettingsService holds per-coach routing knobs. A coach who never saved
// settings reads the defaults; the row is only created on first save.
type SettingsService struct {
	settings SettingsRepository
}

func NewSettingsService(settings SettingsRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

type SettingsInput struct {
	DefaultCheckinDay        int
	DefaultDueHour           int
	DefaultOverdueAfterHours int
	RiskKeywords             []string
}

func (service *SettingsService) Load(coachID uint) (models.CoachSettings, error) {
	settings, found, err := service.settings.FindByCoach(coachID)
	if err != nil {
		return models.CoachSettings{}, err
	}
	if !found {
		return models.DefaultCoachSettings(coachID), nil
	}
	if len(settings.RiskKeywords) == 0 {
		settings.RiskKeywords = models.DefaultRiskKeywords()
	}
	return settings, nil
}

func (service *SettingsService) Update(coachID uint, input SettingsInput, now time.Time) (models.CoachSettings, error) {
	if input.DefaultCheckinDay < 0 || input.DefaultCheckinDay > 6 {
		return models.CoachSettings{}, NewValidationError("default_checkin_day", "day must be between 0 and 6")
	}
	if input.DefaultDueHour < 0 || input.DefaultDueHour > 23 {
		return models.CoachSettings{}, NewValidationError("default_due_hour", "hour must be between 0 and 23")
	}
	if input.DefaultOverdueAfterHours <= 0 {
		return models.CoachSettings{}, NewValidationError("default_overdue_after_hours", "overdue window must be positive")
	}

	settings := models.CoachSettings{
		CoachID:                  coachID,
		DefaultCheckinDay:        input.DefaultCheckinDay,
		DefaultDueHour:           input.DefaultDueHour,
		DefaultOverdueAfterHours: input.DefaultOverdueAfterHours,
		RiskKeywords:             normalizeKeywords(input.RiskKeywords),
		UpdatedAt:                now,
	}
	if err := service.settings.Save(&settings); err != nil {
		return models.CoachSettings{}, err
	}
	return settings, nil
}

// normalizeKeywords trims entries, drops blanks, and deduplicates
// case-insensitively while keeping the first spelling seen.
func normalizeKeywords(keywords []string) []string {
	normalized := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, keyword := range keywords {
		trimmed := strings.TrimSpace(keyword)
		if trimmed == "" {
			continue
		}
		lowered := strings.ToLower(trimmed)
		if seen[lowered] {
			continue
		}
		seen[lowered] = true
		normalized = append(normalized, trimmed)
	}
	return normalized
}
