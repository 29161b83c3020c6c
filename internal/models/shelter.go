package models

type Shelter struct {
	BaseModel
	UserID                    string      `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name                      string      `gorm:"size:255" json:"name"`
	Address                   string      `gorm:"size:255" json:"address"`
	Region                    string      `gorm:"size:20" json:"region"`
	ShelterType               ShelterType `gorm:"type:varchar(20)" json:"shelter_type"`
	BusinessRegistrationNumber string     `gorm:"size:20" json:"business_registration_number"`
	BusinessRegistrationEmail  string     `gorm:"size:255" json:"business_registration_email"`
	ContactNumber             string      `gorm:"size:20" json:"contact_number"`
	BusinessLicenseFile       string      `gorm:"size:255" json:"business_license_file,omitempty"`

	// Relations
	User         *User          `gorm:"foreignKey:UserID" json:"-"`
	Images       []ShelterImage `gorm:"foreignKey:ShelterID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Recruitments []Recruitment  `gorm:"foreignKey:ShelterID;constraint:OnDelete:CASCADE" json:"-"`
}

type ShelterImage struct {
	BaseModel
	ShelterID string `gorm:"type:uuid;not null;index" json:"shelter_id"`
	ImageURL  string `gorm:"size:255;not null" json:"image_url"`
}
