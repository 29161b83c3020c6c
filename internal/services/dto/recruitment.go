package dto

import (
	"encoding/json"
	"time"

	"dangnyang_backend/internal/models"
)

type RecruitmentDTO struct {
	ID          string                   `json:"id"`
	ShelterID   string                   `json:"shelter_id"`
	ShelterName string                   `json:"shelter_name,omitempty"`
	Region      string                   `json:"region,omitempty"`
	Date        string                   `json:"date"`
	StartTime   string                   `json:"start_time"`
	EndTime     string                   `json:"end_time"`
	Type        models.RecruitmentType   `json:"type"`
	Description string                   `json:"description,omitempty"`
	Supplies    []string                 `json:"supplies"`
	Status      models.RecruitmentStatus `json:"status"`
	Images      []RecruitmentImageDTO    `json:"images"`
	CreatedAt   time.Time                `json:"created_at"`
}

type RecruitmentImageDTO struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

type CreateRecruitmentRequest struct {
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string   `json:"start_time" validate:"required,hhmm"`
	EndTime     string   `json:"end_time" validate:"required,hhmm"`
	Type        string   `json:"type" validate:"required,recruitmenttype"`
	Description string   `json:"description" validate:"omitempty,max=255"`
	Supplies    []string `json:"supplies" validate:"omitempty,dive,max=50"`
}

// UpdateRecruitmentRequest patches a recruitment. Nil fields are left
// unchanged.
type UpdateRecruitmentRequest struct {
	Date        *string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string   `json:"start_time,omitempty" validate:"omitempty,hhmm"`
	EndTime     *string   `json:"end_time,omitempty" validate:"omitempty,hhmm"`
	Type        *string   `json:"type,omitempty" validate:"omitempty,recruitmenttype"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=255"`
	Supplies    *[]string `json:"supplies,omitempty" validate:"omitempty,dive,max=50"`
	Status      *string   `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
}

// RecruitmentSearchQuery comes from query parameters. Region accepts
// up to three comma-separated values combined with OR.
type RecruitmentSearchQuery struct {
	Region    string `form:"region"`
	DateFrom  string `form:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" validate:"omitempty,datetime=2006-01-02"`
	StartTime string `form:"start_time" validate:"omitempty,hhmm"`
	EndTime   string `form:"end_time" validate:"omitempty,hhmm"`
}

// NewRecruitmentDTO maps a recruitment model to its public view.
func NewRecruitmentDTO(r *models.Recruitment) RecruitmentDTO {
	images := make([]RecruitmentImageDTO, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, RecruitmentImageDTO{ID: img.ID, ImageURL: img.ImageURL})
	}

	supplies := []string{}
	if len(r.Supplies) > 0 {
		// Supplies is stored as a jsonb string array; a decode failure
		// just leaves the list empty.
		_ = json.Unmarshal(r.Supplies, &supplies)
	}

	d := RecruitmentDTO{
		ID:          r.ID,
		ShelterID:   r.ShelterID,
		Date:        r.Date.Format("2006-01-02"),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Type:        r.Type,
		Description: r.Description,
		Supplies:    supplies,
		Status:      r.Status,
		Images:      images,
		CreatedAt:   r.CreatedAt,
	}
	if r.Shelter != nil {
		d.ShelterName = r.Shelter.Name
		d.Region = r.Shelter.Region
	}
	return d
}
