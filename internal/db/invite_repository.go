package db

import (
	"errors"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"gorm.io/gorm"
)

type InviteRepository struct {
	database *gorm.DB
}

func NewInviteRepository(database *gorm.DB) *InviteRepository {
	return &InviteRepository{database: database}
}

func (repo *InviteRepository) Create(invite *models.CoachInvite) error {
	return repo.database.Create(invite).Error
}

func (repo *InviteRepository) FindByTokenHash(tokenHash string) (models.CoachInvite, bool, error) {
	var invite models.CoachInvite
	err := repo.database.Where("token_hash = ?", tokenHash).First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CoachInvite{}, false, nil
	}
	if err != nil {
		return models.CoachInvite{}, false, err
	}
	return invite, true, nil
}

func (repo *InviteRepository) MarkAccepted(inviteID uint, acceptedAt time.Time) error {
	return repo.database.Model(&models.CoachInvite{}).
		Where("id = ? AND accepted_at IS NULL", inviteID).
		Update("accepted_at", acceptedAt).Error
}

// AcceptWithCoach creates the invited coach account and consumes the invite
// in one transaction.
func (repo *InviteRepository) AcceptWithCoach(invite *models.CoachInvite, coach *models.Coach, acceptedAt time.Time) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(coach).Error; err != nil {
			return err
		}
		return tx.Model(&models.CoachInvite{}).
			Where("id = ? AND accepted_at IS NULL", invite.ID).
			Update("accepted_at", acceptedAt).Error
	})
}
