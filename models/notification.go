// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is an in-app inbox entry shown on the dashboard.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Link    string    `json:"link"`
	Read    bool      `gorm:"default:false" json:"read"`
	SentAt  time.Time `json:"sentAt"`

	gorm.Model
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	n.ID = uuid.New()
	return
}

// PushSubscription stores a browser push subscription (PWA) for a user.
// One active subscription per user; re-subscribing replaces it.
type PushSubscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Subscription JSONB     `gorm:"type:jsonb;not null" json:"subscription"`

	gorm.Model
}

func (s *PushSubscription) BeforeCreate(tx *gorm.DB) (err error) {
	s.ID = uuid.New()
	return
}
