// controllers/notification.go
package controllers

import (
	"errors"
	"net/http"

	"thevoices-backend/config"
	"thevoices-backend/models"
	"thevoices-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetNotifications returns the caller's notifications, newest first.
func GetNotifications(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var notifications []models.Notification
	err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// SaveSubscription stores the browser push subscription for the caller,
// replacing any previous one.
func SaveSubscription(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var subscription models.JSONB
	if err := c.ShouldBindJSON(&subscription); err != nil || len(subscription) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No subscription provided")
		return
	}

	record := models.PushSubscription{
		UserID:       userID,
		Subscription: subscription,
	}

	err := config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"subscription", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Subscription saved successfully"})
}

// MarkNotificationRead flags one of the caller's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid notification ID format")
		return
	}

	var notification models.Notification
	if err := config.DB.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Notification not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&notification).Update("read", true).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
