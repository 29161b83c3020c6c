package dto

import (
	"time"

	"dangnyang_backend/internal/models"
)

type ShelterDTO struct {
	ID                         string             `json:"id"`
	Name                       string             `json:"name"`
	Address                    string             `json:"address"`
	Region                     string             `json:"region"`
	ShelterType                models.ShelterType `json:"shelter_type"`
	BusinessRegistrationNumber string             `json:"business_registration_number"`
	BusinessRegistrationEmail  string             `json:"business_registration_email"`
	ContactNumber              string             `json:"contact_number"`
	BusinessLicenseFile        string             `json:"business_license_file,omitempty"`
	Images                     []ShelterImageDTO  `json:"images"`
	CreatedAt                  time.Time          `json:"created_at"`
}

type ShelterImageDTO struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

// UpdateShelterRequest patches the caller's shelter. Nil fields are
// left unchanged.
type UpdateShelterRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Address       *string `json:"address,omitempty" validate:"omitempty,max=255"`
	Region        *string `json:"region,omitempty" validate:"omitempty,region"`
	ShelterType   *string `json:"shelter_type,omitempty" validate:"omitempty,sheltertype"`
	ContactNumber *string `json:"contact_number,omitempty" validate:"omitempty,max=20"`
}

// ShelterSearchQuery comes from query parameters; every field is
// optional.
type ShelterSearchQuery struct {
	Name    string `form:"name"`
	Region  string `form:"region" validate:"omitempty,region"`
	Address string `form:"address"`
}

// NewShelterDTO maps a shelter model to its public view.
func NewShelterDTO(shelter *models.Shelter) ShelterDTO {
	images := make([]ShelterImageDTO, 0, len(shelter.Images))
	for _, img := range shelter.Images {
		images = append(images, ShelterImageDTO{ID: img.ID, ImageURL: img.ImageURL})
	}
	return ShelterDTO{
		ID:                         shelter.ID,
		Name:                       shelter.Name,
		Address:                    shelter.Address,
		Region:                     shelter.Region,
		ShelterType:                shelter.ShelterType,
		BusinessRegistrationNumber: shelter.BusinessRegistrationNumber,
		BusinessRegistrationEmail:  shelter.BusinessRegistrationEmail,
		ContactNumber:              shelter.ContactNumber,
		BusinessLicenseFile:        shelter.BusinessLicenseFile,
		Images:                     images,
		CreatedAt:                  shelter.CreatedAt,
	}
}
