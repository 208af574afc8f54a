// services/notification_service.go
package services

import (
	"fmt"
	"log"
	"thevoices-backend/models"
	"time"

	"gorm.io/gorm"
)

// NotificationService is the default delivery channel: it writes an in-app
// notification row that the dashboard inbox polls.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) Notify(user *models.User, message string, link string) error {
	notification := models.Notification{
		UserID:  user.ID,
		Message: message,
		Link:    link,
		SentAt:  time.Now(),
	}

	if err := s.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("save notification for user %s: %w", user.ID, err)
	}

	log.Printf("Reminder queued for user %s", user.Username)
	return nil
}
