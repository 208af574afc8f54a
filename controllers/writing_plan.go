// controllers/writing_plan.go
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
)

// WritingPlanInput defines the expected JSON structure for creating or
// updating a plan. Goals are daily word counts (0 disables the weekday);
// times are local "HH:MM" reminder slots (empty disables the weekday).
type WritingPlanInput struct {
	MondayGoal    int `json:"mondayGoal" binding:"min=0"`
	TuesdayGoal   int `json:"tuesdayGoal" binding:"min=0"`
	WednesdayGoal int `json:"wednesdayGoal" binding:"min=0"`
	ThursdayGoal  int `json:"thursdayGoal" binding:"min=0"`
	FridayGoal    int `json:"fridayGoal" binding:"min=0"`
	SaturdayGoal  int `json:"saturdayGoal" binding:"min=0"`
	SundayGoal    int `json:"sundayGoal" binding:"min=0"`

	MondayTime    string `json:"mondayTime"`
	TuesdayTime   string `json:"tuesdayTime"`
	WednesdayTime string `json:"wednesdayTime"`
	ThursdayTime  string `json:"thursdayTime"`
	FridayTime    string `json:"fridayTime"`
	SaturdayTime  string `json:"saturdayTime"`
	SundayTime    string `json:"sundayTime"`
}

func (in *WritingPlanInput) validTimes() bool {
	for _, t := range []string{
		in.MondayTime, in.TuesdayTime, in.WednesdayTime, in.ThursdayTime,
		in.FridayTime, in.SaturdayTime, in.SundayTime,
	} {
		if t != "" && !utils.IsClockTime(t) {
			return false
		}
	}
	return true
}

func (in *WritingPlanInput) apply(plan *models.WritingPlan) {
	plan.MondayGoal = in.MondayGoal
	plan.TuesdayGoal = in.TuesdayGoal
	plan.WednesdayGoal = in.WednesdayGoal
	plan.ThursdayGoal = in.ThursdayGoal
	plan.FridayGoal = in.FridayGoal
	plan.SaturdayGoal = in.SaturdayGoal
	plan.SundayGoal = in.SundayGoal
	plan.MondayTime = in.MondayTime
	plan.TuesdayTime = in.TuesdayTime
	plan.WednesdayTime = in.WednesdayTime
	plan.ThursdayTime = in.ThursdayTime
	plan.FridayTime = in.FridayTime
	plan.SaturdayTime = in.SaturdayTime
	plan.SundayTime = in.SundayTime
}

// FetchWritingPlan returns the caller's plan, or null if none exists yet.
func FetchWritingPlan(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var plan models.WritingPlan
	err := config.DB.Where("user_id = ?", userID).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"writingPlan": nil})
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch writing plan")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"writingPlan": plan})
}

// CreateWritingPlan creates the caller's plan. One plan per user.
func CreateWritingPlan(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input WritingPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.validTimes() {
		utils.RespondWithError(c, http.StatusBadRequest, "Reminder times must be HH:MM (24-hour)")
		return
	}

	var existing models.WritingPlan
	err := config.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Writing plan already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	plan := models.WritingPlan{UserID: userID}
	input.apply(&plan)

	if err := config.DB.Create(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create writing plan")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"writingPlan": plan})
}

// UpdateWritingPlan replaces the slots of an existing plan. The plan must
// belong to the caller.
func UpdateWritingPlan(c *gin.Context) {
	userID, ok := CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	planID, err := uuid.Parse(c.Param("planId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	var input WritingPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.validTimes() {
		utils.RespondWithError(c, http.StatusBadRequest, "Reminder times must be HH:MM (24-hour)")
		return
	}

	var plan models.WritingPlan
	if err := config.DB.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Writing plan not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	input.apply(&plan)

	if err := config.DB.Save(&plan).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update writing plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"writingPlan": plan})
}
