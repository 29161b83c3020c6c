package models

import "time"

type User struct {
	BaseModel
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"not null" json:"-"`
	Name            string     `gorm:"size:100;not null" json:"name"`
	BirthDate       *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	// ContactNumber is nullable so social accounts without a phone
	// number do not collide on the unique index.
	ContactNumber   *string    `gorm:"size:20;uniqueIndex" json:"contact_number,omitempty"`
	UserType        UserType   `gorm:"type:varchar(20);not null" json:"user_type"`
	ProfileImage    string     `gorm:"size:255" json:"profile_image,omitempty"`
	SocialType      SocialType `gorm:"type:varchar(10);not null;default:'email'" json:"social_type"`
	SocialID        *string    `gorm:"size:255;index" json:"-"`
	IsEmailVerified bool       `gorm:"default:false" json:"is_email_verified"`

	// Relations
	Shelter      *Shelter      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Applications []Application `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Histories    []History     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) IsShelterAdmin() bool {
	return u.UserType == UserTypeShelterAdmin
}
