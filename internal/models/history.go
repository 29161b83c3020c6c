package models

// History records a completed (attended) volunteer application. Rating
// stays 0 until the volunteer submits a 1-5 score.
type History struct {
	BaseModel
	UserID        string `gorm:"type:uuid;not null;index" json:"user_id"`
	ShelterID     string `gorm:"type:uuid;not null;index" json:"shelter_id"`
	ApplicationID string `gorm:"type:uuid;not null;uniqueIndex" json:"application_id"`
	Rating        int    `gorm:"default:0" json:"rating"`

	// Relations
	Application *Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Shelter     *Shelter     `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
}

func (h *History) IsRated() bool {
	return h.Rating >= 1 && h.Rating <= 5
}
