package db

import (
	"errors"

	"github.com/marisolfit/coachdesk/internal/models"
	"gorm.io/gorm"
)

type CheckinRepository struct {
	database *gorm.DB
}

func NewCheckinRepository(database *gorm.DB) *CheckinRepository {
	return &CheckinRepository{database: database}
}

func (repo *CheckinRepository) FindByID(checkinID uint) (models.Checkin, bool, error) {
	var checkin models.Checkin
	err := repo.database.First(&checkin, checkinID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Checkin{}, false, nil
	}
	if err != nil {
		return models.Checkin{}, false, err
	}
	return checkin, true, nil
}

func (repo *CheckinRepository) ListByClient(clientID uint) ([]models.Checkin, error) {
	checkins := make([]models.Checkin, 0)
	if err := repo.database.
		Where("client_id = ?", clientID).
		Order("submitted_at DESC, id DESC").
		Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

// LatestByClients returns each client's most recent check-in, keyed by client ID.
func (repo *CheckinRepository) LatestByClients(clientIDs []uint) (map[uint]models.Checkin, error) {
	latest := make(map[uint]models.Checkin, len(clientIDs))
	if len(clientIDs) == 0 {
		return latest, nil
	}

	checkins := make([]models.Checkin, 0)
	if err := repo.database.
		Where("client_id IN ?", clientIDs).
		Order("submitted_at ASC, id ASC").
		Find(&checkins).Error; err != nil {
		return nil, err
	}
	for _, checkin := range checkins {
		latest[checkin.ClientID] = checkin
	}
	return latest, nil
}

// CreateWithTask inserts a check-in and its linked task in one transaction so
// a partially submitted check-in can never exist without its routing task.
func (repo *CheckinRepository) CreateWithTask(checkin *models.Checkin, task *models.Task) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(checkin).Error; err != nil {
			return err
		}
		task.CheckinID = &checkin.ID
		return tx.Create(task).Error
	})
}

func (repo *CheckinRepository) UpdateStatus(checkinID uint, status string) error {
	return repo.database.Model(&models.Checkin{}).Where("id = ?", checkinID).Update("status", status).Error
}
