package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneOnly struct {
	Phone string `json:"phone" validate:"omitempty,krphone"`
}

type timeOnly struct {
	Time string `json:"time" validate:"omitempty,hhmm"`
}

type regionOnly struct {
	Region string `json:"region" validate:"omitempty,region"`
}

func TestKrPhoneRule(t *testing.T) {
	v := New()

	valid := []string{"01012345678", "0101234567", "01198765432"}
	for _, phone := range valid {
		assert.NoError(t, v.Validate(phoneOnly{Phone: phone}), phone)
	}

	invalid := []string{"02123456", "010123456", "010123456789", "010-1234-5678", "abc"}
	for _, phone := range invalid {
		assert.Error(t, v.Validate(phoneOnly{Phone: phone}), phone)
	}

	// empty is left to 'required'
	assert.NoError(t, v.Validate(phoneOnly{}))
}

func TestHHMMRule(t *testing.T) {
	v := New()

	valid := []string{"00:00", "09:30", "23:59"}
	for _, tm := range valid {
		assert.NoError(t, v.Validate(timeOnly{Time: tm}), tm)
	}

	invalid := []string{"24:00", "12:60", "9:30", "12:5", "1230"}
	for _, tm := range invalid {
		assert.Error(t, v.Validate(timeOnly{Time: tm}), tm)
	}
}

func TestRegionRule(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(regionOnly{Region: "서울"}))
	assert.NoError(t, v.Validate(regionOnly{Region: "제주"}))
	assert.Error(t, v.Validate(regionOnly{Region: "Seoul"}))
	assert.Error(t, v.Validate(regionOnly{Region: "화성"}))
}

type signupShape struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Phone           string `json:"contact_number" validate:"required,krphone"`
}

func TestValidateCollectsAllViolations(t *testing.T) {
	v := New()

	err := v.Validate(signupShape{
		Email:           "not-an-email",
		Password:        "short",
		PasswordConfirm: "different",
		Phone:           "123",
	})
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)

	// Every violation is reported at once, keyed by json tag name.
	assert.Len(t, verr.Errors, 4)
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "password")
	assert.Contains(t, verr.Errors, "password_confirm")
	assert.Contains(t, verr.Errors, "contact_number")
}
