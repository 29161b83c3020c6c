package models

import (
	"time"

	"gorm.io/datatypes"
)

type Recruitment struct {
	BaseModel
	ShelterID   string            `gorm:"type:uuid;not null;index" json:"shelter_id"`
	Date        time.Time         `gorm:"type:date;not null" json:"date"`
	StartTime   string            `gorm:"type:varchar(5);not null" json:"start_time"` // "HH:MM"
	EndTime     string            `gorm:"type:varchar(5);not null" json:"end_time"`   // "HH:MM"
	Type        RecruitmentType   `gorm:"type:varchar(20);not null" json:"type"`
	Description string            `gorm:"size:255" json:"description,omitempty"`
	Supplies    datatypes.JSON    `gorm:"type:jsonb" json:"supplies,omitempty"`
	Status      RecruitmentStatus `gorm:"type:varchar(20);default:'open'" json:"status"`

	// Relations
	Shelter *Shelter           `gorm:"foreignKey:ShelterID" json:"-"`
	Images  []RecruitmentImage `gorm:"foreignKey:RecruitmentID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

type RecruitmentImage struct {
	BaseModel
	RecruitmentID string `gorm:"type:uuid;not null;index" json:"recruitment_id"`
	ImageURL      string `gorm:"size:255;not null" json:"image_url"`
}

// TimeWindowsOverlap reports whether two [start,end) windows intersect.
// Times are zero-padded "HH:MM" strings, so lexicographic comparison is
// chronological. Touching boundaries do not overlap.
func TimeWindowsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// SameDate compares the calendar dates of two timestamps.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
