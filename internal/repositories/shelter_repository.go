package repositories

import (
	"errors"

	"dangnyang_backend/internal/models"

	"gorm.io/gorm"
)

var ErrShelterNotFound = errors.New("shelter not found")

// ShelterFilter narrows the shelter directory search. All fields are
// optional and combine with AND.
type ShelterFilter struct {
	Name    string
	Region  string
	Address string
}

type ShelterRepository interface {
	FindAll() ([]models.Shelter, error)
	FindByID(id string) (*models.Shelter, error)
	FindByUserID(userID string) (*models.Shelter, error)
	Search(filter ShelterFilter) ([]models.Shelter, error)
	Create(shelter *models.Shelter) error
	Update(shelter *models.Shelter) error
	UpdateLicenseFile(shelterID, fileURL string) error
	AddImage(image *models.ShelterImage) error
	FindImage(imageID string) (*models.ShelterImage, error)
	DeleteImage(imageID string) error
}

type ShelterRepositoryImpl struct {
	db *gorm.DB
}

func NewShelterRepository(db *gorm.DB) ShelterRepository {
	return &ShelterRepositoryImpl{db: db}
}

func (r *ShelterRepositoryImpl) FindAll() ([]models.Shelter, error) {
	var shelters []models.Shelter
	err := r.db.Preload("Images").Order("created_at DESC").Find(&shelters).Error
	return shelters, err
}

func (r *ShelterRepositoryImpl) FindByID(id string) (*models.Shelter, error) {
	var shelter models.Shelter
	err := r.db.Preload("Images").First(&shelter, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelterNotFound
		}
		return nil, err
	}
	return &shelter, nil
}

func (r *ShelterRepositoryImpl) FindByUserID(userID string) (*models.Shelter, error) {
	var shelter models.Shelter
	err := r.db.Preload("Images").First(&shelter, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelterNotFound
		}
		return nil, err
	}
	return &shelter, nil
}

func (r *ShelterRepositoryImpl) Search(filter ShelterFilter) ([]models.Shelter, error) {
	query := r.db.Preload("Images")

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Address != "" {
		query = query.Where("address ILIKE ?", "%"+filter.Address+"%")
	}

	var shelters []models.Shelter
	err := query.Order("created_at DESC").Find(&shelters).Error
	return shelters, err
}

func (r *ShelterRepositoryImpl) Create(shelter *models.Shelter) error {
	return r.db.Create(shelter).Error
}

func (r *ShelterRepositoryImpl) Update(shelter *models.Shelter) error {
	return r.db.Save(shelter).Error
}

func (r *ShelterRepositoryImpl) UpdateLicenseFile(shelterID, fileURL string) error {
	result := r.db.Model(&models.Shelter{}).Where("id = ?", shelterID).
		Update("business_license_file", fileURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShelterNotFound
	}
	return nil
}

func (r *ShelterRepositoryImpl) AddImage(image *models.ShelterImage) error {
	return r.db.Create(image).Error
}

func (r *ShelterRepositoryImpl) FindImage(imageID string) (*models.ShelterImage, error) {
	var image models.ShelterImage
	err := r.db.First(&image, "id = ?", imageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShelterNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *ShelterRepositoryImpl) DeleteImage(imageID string) error {
	return r.db.Delete(&models.ShelterImage{}, "id = ?", imageID).Error
}
