package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicationStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{"pending to approved", ApplicationStatusPending, ApplicationStatusApproved, true},
		{"pending to rejected", ApplicationStatusPending, ApplicationStatusRejected, true},
		{"pending to attended", ApplicationStatusPending, ApplicationStatusAttended, false},
		{"pending to absence", ApplicationStatusPending, ApplicationStatusAbsence, false},
		{"approved to attended", ApplicationStatusApproved, ApplicationStatusAttended, true},
		{"approved to absence", ApplicationStatusApproved, ApplicationStatusAbsence, true},
		{"approved to rejected", ApplicationStatusApproved, ApplicationStatusRejected, false},
		{"approved to pending", ApplicationStatusApproved, ApplicationStatusPending, false},
		{"rejected is terminal", ApplicationStatusRejected, ApplicationStatusApproved, false},
		{"attended is terminal", ApplicationStatusAttended, ApplicationStatusAbsence, false},
		{"absence is terminal", ApplicationStatusAbsence, ApplicationStatusAttended, false},
		{"no self transition", ApplicationStatusPending, ApplicationStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}
