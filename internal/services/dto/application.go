package dto

import (
	"time"

	"dangnyang_backend/internal/models"
)

type CreateApplicationRequest struct {
	RecruitmentID string `json:"recruitment_id" validate:"required,uuid"`
}

// RejectApplicationRequest carries the mandatory rejection reason. The
// service checks for a non-blank reason itself so that whitespace-only
// input is rejected too.
type RejectApplicationRequest struct {
	RejectedReason string `json:"rejected_reason" validate:"max=255"`
}

type ApplicationDTO struct {
	ID             string                   `json:"id"`
	RecruitmentID  string                   `json:"recruitment_id"`
	ShelterID      string                   `json:"shelter_id"`
	Status         models.ApplicationStatus `json:"status"`
	RejectedReason *string                  `json:"rejected_reason,omitempty"`
	Recruitment    *RecruitmentDTO          `json:"recruitment,omitempty"`
	ShelterName    string                   `json:"shelter_name,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// ApplicantDTO is what a shelter admin sees per applicant.
type ApplicantDTO struct {
	ApplicationID  string                   `json:"application_id"`
	Status         models.ApplicationStatus `json:"status"`
	RejectedReason *string                  `json:"rejected_reason,omitempty"`
	UserID         string                   `json:"user_id"`
	Name           string                   `json:"name"`
	ContactNumber  string                   `json:"contact_number"`
	ProfileImage   string                   `json:"profile_image,omitempty"`
	AppliedAt      time.Time                `json:"applied_at"`
}

// NewApplicationDTO maps an application model to the volunteer's view.
func NewApplicationDTO(a *models.Application) ApplicationDTO {
	d := ApplicationDTO{
		ID:             a.ID,
		RecruitmentID:  a.RecruitmentID,
		ShelterID:      a.ShelterID,
		Status:         a.Status,
		RejectedReason: a.RejectedReason,
		CreatedAt:      a.CreatedAt,
	}
	if a.Recruitment != nil {
		recruitment := NewRecruitmentDTO(a.Recruitment)
		d.Recruitment = &recruitment
	}
	if a.Shelter != nil {
		d.ShelterName = a.Shelter.Name
	}
	return d
}

// NewApplicantDTO maps an application to the shelter admin's view of
// the applicant.
func NewApplicantDTO(a *models.Application) ApplicantDTO {
	d := ApplicantDTO{
		ApplicationID:  a.ID,
		Status:         a.Status,
		RejectedReason: a.RejectedReason,
		UserID:         a.UserID,
		AppliedAt:      a.CreatedAt,
	}
	if a.User != nil {
		d.Name = a.User.Name
		d.ProfileImage = a.User.ProfileImage
		if a.User.ContactNumber != nil {
			d.ContactNumber = *a.User.ContactNumber
		}
	}
	return d
}
