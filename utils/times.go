// utils/times.go
package utils

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimezone is returned when a user's timezone identifier cannot be
// resolved to an IANA location.
var ErrInvalidTimezone = errors.New("invalid timezone")

// ResolveLocalTime converts an instant into a user's local weekday and clock
// time. Weekday follows time.Weekday numbering (0=Sunday … 6=Saturday); the
// clock time is "HH:MM" 24-hour. Conversion goes through the IANA database,
// so daylight-saving shifts are handled.
func ResolveLocalTime(timezone string, now time.Time) (int, string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q", ErrInvalidTimezone, timezone)
	}
	local := now.In(loc)
	return int(local.Weekday()), local.Format("15:04"), nil
}

// TimeToMinutes converts an "HH:MM" string to minutes since midnight.
func TimeToMinutes(s string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("malformed clock time %q: %w", s, err)
	}
	return hours*60 + minutes, nil
}
