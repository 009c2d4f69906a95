package db

import (
	"errors"

	"github.com/marisolfit/coachdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// FindByCoach reports found=false when the coach has never saved settings.
func (repo *SettingsRepository) FindByCoach(coachID uint) (models.CoachSettings, bool, error) {
	var settings models.CoachSettings
	err := repo.database.First(&settings, "coach_id = ?", coachID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CoachSettings{}, false, nil
	}
	if err != nil {
		return models.CoachSettings{}, false, err
	}
	return settings, true, nil
}

// Save inserts or replaces the coach's settings row.
func (repo *SettingsRepository) Save(settings *models.CoachSettings) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coach_id"}},
		UpdateAll: true,
	}).Create(settings).Error
}
