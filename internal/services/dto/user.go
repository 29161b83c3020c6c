package dto

// UpdateUserRequest updates the caller's own profile. Nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=50"`
	BirthDate     *string `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ContactNumber *string `json:"contact_number,omitempty" validate:"omitempty,krphone"`
}

type ProfileImageResponse struct {
	ProfileImage string `json:"profile_image"`
}
