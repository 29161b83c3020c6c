package repositories

import (
	"errors"
	"time"

	"dangnyang_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRecruitmentNotFound = errors.New("recruitment not found")

// RecruitmentFilter narrows the recruitment search. Regions combine
// with OR (up to three values), the date range is inclusive and the
// time window matches any recruitment whose [start,end) overlaps it.
type RecruitmentFilter struct {
	Regions   []string
	DateFrom  *time.Time
	DateTo    *time.Time
	StartTime string
	EndTime   string
}

type RecruitmentRepository interface {
	FindAll() ([]models.Recruitment, error)
	FindByID(id string) (*models.Recruitment, error)
	FindByShelterID(shelterID string) ([]models.Recruitment, error)
	Search(filter RecruitmentFilter) ([]models.Recruitment, error)
	Create(recruitment *models.Recruitment) error
	Update(recruitment *models.Recruitment) error
	AddImage(image *models.RecruitmentImage) error
	FindImage(imageID string) (*models.RecruitmentImage, error)
	DeleteImage(imageID string) error
}

type RecruitmentRepositoryImpl struct {
	db *gorm.DB
}

func NewRecruitmentRepository(db *gorm.DB) RecruitmentRepository {
	return &RecruitmentRepositoryImpl{db: db}
}

func (r *RecruitmentRepositoryImpl) FindAll() ([]models.Recruitment, error) {
	var recruitments []models.Recruitment
	err := r.db.Preload("Images").Preload("Shelter").
		Order("date ASC, start_time ASC").Find(&recruitments).Error
	return recruitments, err
}

func (r *RecruitmentRepositoryImpl) FindByID(id string) (*models.Recruitment, error) {
	var recruitment models.Recruitment
	err := r.db.Preload("Images").Preload("Shelter").First(&recruitment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecruitmentNotFound
		}
		return nil, err
	}
	return &recruitment, nil
}

func (r *RecruitmentRepositoryImpl) FindByShelterID(shelterID string) ([]models.Recruitment, error) {
	var recruitments []models.Recruitment
	err := r.db.Preload("Images").Where("shelter_id = ?", shelterID).
		Order("date ASC, start_time ASC").Find(&recruitments).Error
	return recruitments, err
}

func (r *RecruitmentRepositoryImpl) Search(filter RecruitmentFilter) ([]models.Recruitment, error) {
	query := r.db.Preload("Images").Preload("Shelter")

	if len(filter.Regions) > 0 {
		query = query.Joins("JOIN shelters ON shelters.id = recruitments.shelter_id").
			Where("shelters.region IN ?", filter.Regions)
	}
	if filter.DateFrom != nil {
		query = query.Where("recruitments.date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		query = query.Where("recruitments.date <= ?", filter.DateTo.Format("2006-01-02"))
	}
	if filter.StartTime != "" && filter.EndTime != "" {
		// [start,end) overlap, lexicographic on zero-padded HH:MM
		query = query.Where("recruitments.start_time < ? AND recruitments.end_time > ?",
			filter.EndTime, filter.StartTime)
	}

	var recruitments []models.Recruitment
	err := query.Order("recruitments.date ASC, recruitments.start_time ASC").Find(&recruitments).Error
	return recruitments, err
}

func (r *RecruitmentRepositoryImpl) Create(recruitment *models.Recruitment) error {
	return r.db.Create(recruitment).Error
}

func (r *RecruitmentRepositoryImpl) Update(recruitment *models.Recruitment) error {
	return r.db.Save(recruitment).Error
}

func (r *RecruitmentRepositoryImpl) AddImage(image *models.RecruitmentImage) error {
	return r.db.Create(image).Error
}

func (r *RecruitmentRepositoryImpl) FindImage(imageID string) (*models.RecruitmentImage, error) {
	var image models.RecruitmentImage
	err := r.db.First(&image, "id = ?", imageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecruitmentNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *RecruitmentRepositoryImpl) DeleteImage(imageID string) error {
	return r.db.Delete(&models.RecruitmentImage{}, "id = ?", imageID).Error
}
