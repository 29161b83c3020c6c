package repositories

import (
	"errors"

	"dangnyang_backend/internal/models"

	"gorm.io/gorm"
)

var ErrHistoryNotFound = errors.New("history not found")

type HistoryRepository interface {
	FindByUserID(userID string) ([]models.History, error)
	FindByID(id string) (*models.History, error)
	FindByApplicationID(applicationID string) (*models.History, error)
	Create(history *models.History) error
	UpdateRating(historyID string, rating int) error
}

type HistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &HistoryRepositoryImpl{db: db}
}

func (r *HistoryRepositoryImpl) FindByUserID(userID string) ([]models.History, error) {
	var histories []models.History
	err := r.db.Preload("Application").Preload("Application.Recruitment").Preload("Shelter").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&histories).Error
	return histories, err
}

func (r *HistoryRepositoryImpl) FindByID(id string) (*models.History, error) {
	var history models.History
	err := r.db.Preload("Application").Preload("Shelter").First(&history, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return &history, nil
}

func (r *HistoryRepositoryImpl) FindByApplicationID(applicationID string) (*models.History, error) {
	var history models.History
	err := r.db.First(&history, "application_id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHistoryNotFound
		}
		return nil, err
	}
	return &history, nil
}

func (r *HistoryRepositoryImpl) Create(history *models.History) error {
	return r.db.Create(history).Error
}

func (r *HistoryRepositoryImpl) UpdateRating(historyID string, rating int) error {
	result := r.db.Model(&models.History{}).Where("id = ?", historyID).
		Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHistoryNotFound
	}
	return nil
}
