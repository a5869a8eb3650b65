package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(h, m int) time.Time {
	return time.Date(2030, 5, 10, h, m, 0, 0, time.UTC)
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name         string
		aStart, aEnd time.Time
		bStart, bEnd time.Time
		want         bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"contained", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
		{"touching end to start", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"touching start to end", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Conflicts(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// симметричность
			assert.Equal(t, tt.want, Conflicts(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(at(10, 0), at(11, 0)))
	assert.ErrorIs(t, ValidateInterval(at(10, 0), at(10, 0)), ErrInvalidInterval)
	assert.ErrorIs(t, ValidateInterval(at(11, 0), at(10, 0)), ErrInvalidInterval)
}

func TestEndFor(t *testing.T) {
	svc := &Service{DurationHours: 1.5}
	assert.Equal(t, at(11, 30), EndFor(at(10, 0), svc))

	// 1/3 часа округляется до целых секунд
	third := &Service{DurationHours: 1.0 / 3.0}
	assert.Equal(t, 20*time.Minute, third.Duration())
}

func TestServiceValidate(t *testing.T) {
	assert.NoError(t, (&Service{DurationHours: 1, Price: 0}).Validate())
	assert.ErrorIs(t, (&Service{DurationHours: 0}).Validate(), ErrInvalidService)
	assert.ErrorIs(t, (&Service{DurationHours: 1, Price: -1}).Validate(), ErrInvalidService)
}

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "APT/00001", FormatReference("APT/", 1))
	assert.Equal(t, "APT/123456", FormatReference("APT/", 123456))
}
