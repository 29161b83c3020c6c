package validator

import (
	"log"
	"regexp"

	"dangnyang_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	krPhonePattern = regexp.MustCompile(`^01[0-9]\d{7,8}$`)
	hhmmPattern    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// registerCustomRules registers the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("krphone", validateKrPhone)
	mustRegister("hhmm", validateHHMM)
	mustRegister("region", validateRegion)
	mustRegister("sheltertype", validateShelterType)
	mustRegister("recruitmenttype", validateRecruitmentType)
}

func validateKrPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return krPhonePattern.MatchString(value)
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return hhmmPattern.MatchString(value)
}

func validateRegion(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.IsValidRegion(value)
}

func validateShelterType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ShelterType(value) {
	case models.ShelterTypeCorporation, models.ShelterTypeIndividual, models.ShelterTypeNonProfit:
		return true
	default:
		return false
	}
}

func validateRecruitmentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.RecruitmentType(value) {
	case models.RecruitmentTypeCleaning, models.RecruitmentTypeWalking, models.RecruitmentTypeFeeding, models.RecruitmentTypeOther:
		return true
	default:
		return false
	}
}
