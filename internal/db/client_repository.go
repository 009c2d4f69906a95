package db

import (
	"errors"
	"strings"
	"time"

	"github.com/marisolfit/coachdesk/internal/models"
	"github.com/marisolfit/coachdesk/internal/services"
	"gorm.io/gorm"
)

type ClientRepository struct {
	database *gorm.DB
}

func NewClientRepository(database *gorm.DB) *ClientRepository {
	return &ClientRepository{database: database}
}

func (repo *ClientRepository) scoped(scope services.CoachScope) *gorm.DB {
	query := repo.database.Model(&models.Client{})
	if !scope.Admin {
		query = query.Where("coach_id = ?", scope.CoachID)
	}
	return query
}

func (repo *ClientRepository) ListPage(listQuery services.ClientListQuery) ([]models.Client, int64, error) {
	query := repo.scoped(listQuery.Scope)
	if listQuery.Status != "" {
		query = query.Where("status = ?", listQuery.Status)
	}
	if search := strings.TrimSpace(listQuery.Search); search != "" {
		query = query.Where("lower(full_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	clients := make([]models.Client, 0)
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(listQuery.Offset).
		Limit(listQuery.Limit).
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (repo *ClientRepository) FindByID(clientID uint) (models.Client, bool, error) {
	var client models.Client
	err := repo.database.First(&client, clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Client{}, false, nil
	}
	if err != nil {
		return models.Client{}, false, err
	}
	return client, true, nil
}

// FindActiveByTokenHash reports found=false when no active client carries the
// hash; archived clients never match.
func (repo *ClientRepository) FindActiveByTokenHash(tokenHash string) (models.Client, bool, error) {
	var client models.Client
	err := repo.database.
		Where("token_hash = ? AND status = ?", tokenHash, models.ClientStatusActive).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Client{}, false, nil
	}
	if err != nil {
		return models.Client{}, false, err
	}
	return client, true, nil
}

func (repo *ClientRepository) Create(client *models.Client) error {
	return repo.database.Create(client).Error
}

func (repo *ClientRepository) UpdateByID(clientID uint, updates map[string]any) error {
	return repo.database.Model(&models.Client{}).Where("id = ?", clientID).Updates(updates).Error
}

func (repo *ClientRepository) RotateToken(clientID uint, tokenHash string, generatedAt time.Time) error {
	return repo.database.Model(&models.Client{}).Where("id = ?", clientID).Updates(map[string]any{
		"token_hash":         tokenHash,
		"token_generated_at": generatedAt,
	}).Error
}
