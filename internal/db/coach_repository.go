package db

import (
	"errors"

	"github.com/marisolfit/coachdesk/internal/models"
	"gorm.io/gorm"
)

type CoachRepository struct {
	database *gorm.DB
}

func NewCoachRepository(database *gorm.DB) *CoachRepository {
	return &CoachRepository{database: database}
}

func (repo *CoachRepository) CountCoaches() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Coach{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *CoachRepository) FindByID(coachID uint) (models.Coach, bool, error) {
	var coach models.Coach
	err := repo.database.First(&coach, coachID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Coach{}, false, nil
	}
	if err != nil {
		return models.Coach{}, false, err
	}
	return coach, true, nil
}

func (repo *CoachRepository) FindByNormalizedEmail(email string) (models.Coach, bool, error) {
	var coach models.Coach
	err := repo.database.Where("lower(trim(email)) = ?", email).First(&coach).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Coach{}, false, nil
	}
	if err != nil {
		return models.Coach{}, false, err
	}
	return coach, true, nil
}

func (repo *CoachRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Coach{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *CoachRepository) Create(coach *models.Coach) error {
	return repo.database.Create(coach).Error
}

func (repo *CoachRepository) List() ([]models.Coach, error) {
	coaches := make([]models.Coach, 0)
	if err := repo.database.Order("created_at ASC, id ASC").Find(&coaches).Error; err != nil {
		return nil, err
	}
	return coaches, nil
}
