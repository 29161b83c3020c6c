package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeWindowsOverlap(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical windows", "10:00", "12:00", "10:00", "12:00", true},
		{"partial overlap", "10:00", "12:00", "11:00", "13:00", true},
		{"contained window", "10:00", "14:00", "11:00", "12:00", true},
		{"touching boundaries do not overlap", "10:00", "12:00", "12:00", "14:00", false},
		{"touching boundaries reversed", "12:00", "14:00", "10:00", "12:00", false},
		{"disjoint windows", "08:00", "09:00", "10:00", "11:00", false},
		{"one minute overlap", "10:00", "12:01", "12:00", "14:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeWindowsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, TimeWindowsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	c := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(b, c))
}

func TestHistoryIsRated(t *testing.T) {
	h := History{}
	assert.False(t, h.IsRated())

	h.Rating = 3
	assert.True(t, h.IsRated())

	h.Rating = 6
	assert.False(t, h.IsRated())
}
