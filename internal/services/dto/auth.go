package dto

import (
	"time"

	"dangnyang_backend/internal/models"
)

// SignupRequest registers a volunteer account.
type SignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required,max=50"`
	BirthDate       string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	ContactNumber   string `json:"contact_number" validate:"required,krphone"`
}

// ShelterSignupRequest registers a shelter admin together with the
// shelter it manages.
type ShelterSignupRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required,max=50"`
	BirthDate       string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	ContactNumber   string `json:"contact_number" validate:"required,krphone"`

	ShelterName                string `json:"shelter_name" validate:"required,max=100"`
	Address                    string `json:"address" validate:"required,max=255"`
	Region                     string `json:"region" validate:"required,region"`
	ShelterType                string `json:"shelter_type" validate:"required,sheltertype"`
	BusinessRegistrationNumber string `json:"business_registration_number" validate:"required,max=20"`
	BusinessRegistrationEmail  string `json:"business_registration_email" validate:"required,email"`
	ShelterContactNumber       string `json:"shelter_contact_number" validate:"required,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// KakaoLoginRequest carries the provider-issued access token.
type KakaoLoginRequest struct {
	AccessToken string `json:"access_token" validate:"required"`
}

type FindEmailRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required,krphone"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

type EmailCheckRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailConfirmationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// TokenResponse is returned by login, refresh and social login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse bundles tokens with the authenticated user.
type AuthResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         UserDTO `json:"user"`
}

type FindEmailResponse struct {
	Email string `json:"email"`
}

// UserDTO is the public view of an account.
type UserDTO struct {
	ID              string            `json:"id"`
	Email           string            `json:"email"`
	Name            string            `json:"name"`
	BirthDate       *string           `json:"birth_date,omitempty"`
	ContactNumber   string            `json:"contact_number,omitempty"`
	UserType        models.UserType   `json:"user_type"`
	ProfileImage    string            `json:"profile_image,omitempty"`
	SocialType      models.SocialType `json:"social_type"`
	IsEmailVerified bool              `json:"is_email_verified"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewUserDTO maps a user model to its public view.
func NewUserDTO(user *models.User) UserDTO {
	d := UserDTO{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		UserType:        user.UserType,
		ProfileImage:    user.ProfileImage,
		SocialType:      user.SocialType,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
	}
	if user.ContactNumber != nil {
		d.ContactNumber = *user.ContactNumber
	}
	if user.BirthDate != nil {
		birthDate := user.BirthDate.Format("2006-01-02")
		d.BirthDate = &birthDate
	}
	return d
}
