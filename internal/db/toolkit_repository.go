package db

import (
	"errors"

	"github.com/marisolfit/coachdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ToolkitRepository struct {
	database *gorm.DB
}

func NewToolkitRepository(database *gorm.DB) *ToolkitRepository {
	return &ToolkitRepository{database: database}
}

func (repo *ToolkitRepository) FindByClient(clientID uint) (models.ToolkitRecord, bool, error) {
	var record models.ToolkitRecord
	err := repo.database.First(&record, "client_id = ?", clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ToolkitRecord{}, false, nil
	}
	if err != nil {
		return models.ToolkitRecord{}, false, err
	}
	return record, true, nil
}

func (repo *ToolkitRepository) Upsert(record *models.ToolkitRecord) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		UpdateAll: true,
	}).Create(record).Error
}
