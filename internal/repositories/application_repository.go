package repositories

import (
	"errors"
	"time"

	"dangnyang_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrApplicationDuplicate = errors.New("application already exists for this recruitment")
)

type ApplicationRepository interface {
	FindByID(id string) (*models.Application, error)
	FindByUserID(userID string) ([]models.Application, error)
	FindByRecruitmentID(recruitmentID string) ([]models.Application, error)
	// FindActiveByUserOnDate returns the user's pending and approved
	// applications whose recruitment falls on the given calendar date.
	FindActiveByUserOnDate(userID string, date time.Time) ([]models.Application, error)
	Create(application *models.Application) error
	UpdateStatus(application *models.Application) error
	// MarkAttended flips the status and records the history row in the
	// same transaction.
	MarkAttended(application *models.Application) (*models.History, error)
	Delete(id string) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.db.Preload("Recruitment").Preload("Recruitment.Images").
		Preload("Shelter").Preload("User").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByUserID(userID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Recruitment").Preload("Shelter").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindByRecruitmentID(recruitmentID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("User").
		Where("recruitment_id = ?", recruitmentID).
		Order("created_at ASC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) FindActiveByUserOnDate(userID string, date time.Time) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Preload("Recruitment").
		Joins("JOIN recruitments ON recruitments.id = applications.recruitment_id").
		Where("applications.user_id = ?", userID).
		Where("applications.status IN ?", []models.ApplicationStatus{
			models.ApplicationStatusPending, models.ApplicationStatusApproved,
		}).
		Where("recruitments.date = ?", date.Format("2006-01-02")).
		Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	err := r.db.Create(application).Error
	if err != nil {
		// The composite unique index on (user_id, recruitment_id)
		// catches races the pre-check misses.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrApplicationDuplicate
		}
		return err
	}
	return nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(application *models.Application) error {
	return r.db.Model(application).
		Select("status", "rejected_reason").
		Updates(map[string]interface{}{
			"status":          application.Status,
			"rejected_reason": application.RejectedReason,
		}).Error
}

func (r *ApplicationRepositoryImpl) MarkAttended(application *models.Application) (*models.History, error) {
	history := &models.History{
		UserID:        application.UserID,
		ShelterID:     application.ShelterID,
		ApplicationID: application.ID,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(application).Update("status", models.ApplicationStatusAttended).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *ApplicationRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
