package dto

import (
	"time"

	"dangnyang_backend/internal/models"
)

type HistoryDTO struct {
	ID          string          `json:"id"`
	Rating      int             `json:"rating"`
	ShelterID   string          `json:"shelter_id"`
	ShelterName string          `json:"shelter_name,omitempty"`
	Recruitment *RecruitmentDTO `json:"recruitment,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type RateHistoryRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// NewHistoryDTO maps a history model to its public view.
func NewHistoryDTO(h *models.History) HistoryDTO {
	d := HistoryDTO{
		ID:        h.ID,
		Rating:    h.Rating,
		ShelterID: h.ShelterID,
		CreatedAt: h.CreatedAt,
	}
	if h.Shelter != nil {
		d.ShelterName = h.Shelter.Name
	}
	if h.Application != nil && h.Application.Recruitment != nil {
		recruitment := NewRecruitmentDTO(h.Application.Recruitment)
		d.Recruitment = &recruitment
	}
	return d
}
