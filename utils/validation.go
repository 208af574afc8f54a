// utils/validation.go
package utils

import (
	"regexp"
	"strings"
	"time"
)

var clockTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsClockTime checks if a string is a well-formed 24-hour "HH:MM" time.
func IsClockTime(s string) bool {
	return clockTimeRegex.MatchString(s)
}

// ValidateTimezone checks that a string resolves as an IANA timezone
// identifier. The empty string is rejected here even though LoadLocation
// would map it to UTC, because an empty timezone means "reminders off".
func ValidateTimezone(tz string) bool {
	if strings.TrimSpace(tz) == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}
