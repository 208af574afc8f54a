package controllers

import (
	"net/http"
	"thevoices-backend/config"
	"thevoices-backend/models"
	"thevoices-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Timezone *string `json:"timezone"`
	Bio      *string `json:"bio"`
	Img      *string `json:"img"`
	Phone    *string `json:"phone"`
}

func GetProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the mutable profile fields. Setting timezone is what
// opts a user into writing reminders; clearing it opts out.
func UpdateProfile(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Timezone != nil && *input.Timezone != "" && !utils.ValidateTimezone(*input.Timezone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid timezone identifier")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	if input.Timezone != nil {
		user.Timezone = *input.Timezone
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Img != nil {
		user.Img = *input.Img
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
