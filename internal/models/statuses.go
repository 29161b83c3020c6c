package models

type UserType string
type SocialType string
type ShelterType string
type RecruitmentType string
type RecruitmentStatus string
type ApplicationStatus string

const (
	UserTypeVolunteer    UserType = "volunteer"
	UserTypeShelterAdmin UserType = "shelter_admin"

	SocialTypeEmail SocialType = "email"
	SocialTypeKakao SocialType = "kakao"

	ShelterTypeCorporation ShelterType = "corporation"
	ShelterTypeIndividual  ShelterType = "individual"
	ShelterTypeNonProfit   ShelterType = "non_profit"

	RecruitmentTypeCleaning RecruitmentType = "cleaning"
	RecruitmentTypeWalking  RecruitmentType = "walking"
	RecruitmentTypeFeeding  RecruitmentType = "feeding"
	RecruitmentTypeOther    RecruitmentType = "other"

	RecruitmentStatusOpen   RecruitmentStatus = "open"
	RecruitmentStatusClosed RecruitmentStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
	ApplicationStatusAttended ApplicationStatus = "attended"
	ApplicationStatusAbsence  ApplicationStatus = "absence"
)

// Regions keeps the Korean administrative-region values used by the
// shelter directory.
var Regions = []string{
	"서울", "부산", "대구", "인천", "광주", "대전", "울산", "세종",
	"경기", "강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주",
}

func IsValidRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}
