// services/reminder_store.go
package services

import (
	"fmt"
	"thevoices-backend/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPlanStore reads writing plans from Postgres.
type GormPlanStore struct {
	db *gorm.DB
}

func NewGormPlanStore(db *gorm.DB) *GormPlanStore {
	return &GormPlanStore{db: db}
}

// ListAllWithUsers loads every plan with its owning user in one query pair
// (Preload), so a tick never degrades into per-user lookups.
func (s *GormPlanStore) ListAllWithUsers() ([]models.WritingPlan, error) {
	var plans []models.WritingPlan
	if err := s.db.Preload("User").Find(&plans).Error; err != nil {
		return nil, fmt.Errorf("list writing plans: %w", err)
	}
	return plans, nil
}

// GormReminderLedger records sent reminders in Postgres.
type GormReminderLedger struct {
	db *gorm.DB
}

func NewGormReminderLedger(db *gorm.DB) *GormReminderLedger {
	return &GormReminderLedger{db: db}
}

// CheckAndReserve inserts the (user, date, day) ledger row with ON CONFLICT
// DO NOTHING against the composite unique index. RowsAffected tells whether
// this call won the reservation; two racing ticks get exactly one true.
func (l *GormReminderLedger) CheckAndReserve(userID uuid.UUID, date time.Time, day string) (bool, error) {
	entry := models.SentReminder{
		UserID: userID,
		Date:   date,
		Day:    day,
	}

	result := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "day"}},
		DoNothing: true,
	}).Create(&entry)

	if result.Error != nil {
		return false, fmt.Errorf("reserve reminder: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
