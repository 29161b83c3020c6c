package models

type Application struct {
	BaseModel
	UserID        string            `gorm:"type:uuid;not null;uniqueIndex:idx_user_recruitment" json:"user_id"`
	RecruitmentID string            `gorm:"type:uuid;not null;uniqueIndex:idx_user_recruitment" json:"recruitment_id"`
	ShelterID     string            `gorm:"type:uuid;not null;index" json:"shelter_id"`
	Status        ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RejectedReason *string          `json:"rejected_reason,omitempty"`

	// Relations
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Recruitment *Recruitment `gorm:"foreignKey:RecruitmentID" json:"recruitment,omitempty"`
	Shelter     *Shelter     `gorm:"foreignKey:ShelterID" json:"shelter,omitempty"`
}

// applicationTransitions is the allowed status graph:
// pending -> approved | rejected, approved -> attended | absence.
// rejected, attended and absence are terminal.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusPending:  {ApplicationStatusApproved, ApplicationStatusRejected},
	ApplicationStatusApproved: {ApplicationStatusAttended, ApplicationStatusAbsence},
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
