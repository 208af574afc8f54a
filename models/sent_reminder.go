// models/sent_reminder.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SentReminder records that a writing reminder was dispatched. The composite
// unique index on (user_id, date, day) is what guarantees at most one
// reminder per user per calendar day per weekday slot: reserving a send is a
// conditional insert against this key.
//
// Date is the scheduler's calendar date at midnight, not the user's local
// date; only Day carries the user-local weekday. Changing that would change
// dedup behavior around midnight.
type SentReminder struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_date_day,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:idx_user_date_day,priority:2"`
	Day    string    `gorm:"type:varchar(9);not null;uniqueIndex:idx_user_date_day,priority:3"` // "Monday" … "Sunday"

	gorm.Model
}

func (r *SentReminder) BeforeCreate(tx *gorm.DB) (err error) {
	r.ID = uuid.New()
	return
}
