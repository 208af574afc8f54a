package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsClockTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "19:05", "23:59"}
	for _, s := range valid {
		assert.True(t, IsClockTime(s), s)
	}

	invalid := []string{"", "24:00", "9:30", "12:60", "12.30", "noon", "09:30:00"}
	for _, s := range invalid {
		assert.False(t, IsClockTime(s), s)
	}
}

func TestValidateTimezone(t *testing.T) {
	assert.True(t, ValidateTimezone("America/New_York"))
	assert.True(t, ValidateTimezone("Europe/Berlin"))
	assert.True(t, ValidateTimezone("UTC"))

	assert.False(t, ValidateTimezone(""))
	assert.False(t, ValidateTimezone("   "))
	assert.False(t, ValidateTimezone("Mars/Olympus_Mons"))
}
