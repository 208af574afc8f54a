// utils/dates.go
package utils

import "time"

// BeginningOfDay truncates a time to midnight in its own location. Used as
// the date component of the sent-reminder ledger key.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
