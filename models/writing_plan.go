package models

import (
	"thevoices-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WritingPlan holds a user's weekly writing goals: for each weekday a target
// word count and a local reminder time in "HH:MM" (24-hour) form. One plan
// per user.
type WritingPlan struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	MondayGoal    int `gorm:"default:0" json:"mondayGoal"`
	TuesdayGoal   int `gorm:"default:0" json:"tuesdayGoal"`
	WednesdayGoal int `gorm:"default:0" json:"wednesdayGoal"`
	ThursdayGoal  int `gorm:"default:0" json:"thursdayGoal"`
	FridayGoal    int `gorm:"default:0" json:"fridayGoal"`
	SaturdayGoal  int `gorm:"default:0" json:"saturdayGoal"`
	SundayGoal    int `gorm:"default:0" json:"sundayGoal"`

	MondayTime    string `gorm:"type:varchar(5)" json:"mondayTime"`
	TuesdayTime   string `gorm:"type:varchar(5)" json:"tuesdayTime"`
	WednesdayTime string `gorm:"type:varchar(5)" json:"wednesdayTime"`
	ThursdayTime  string `gorm:"type:varchar(5)" json:"thursdayTime"`
	FridayTime    string `gorm:"type:varchar(5)" json:"fridayTime"`
	SaturdayTime  string `gorm:"type:varchar(5)" json:"saturdayTime"`
	SundayTime    string `gorm:"type:varchar(5)" json:"sundayTime"`

	gorm.Model
}

func (p *WritingPlan) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}

// DaySlot is one weekday's goal/time pair within a plan.
type DaySlot struct {
	Goal  int
	Time  string
	Label string
}

// Configured reports whether the slot takes part in reminder matching:
// a positive goal and a well-formed "HH:MM" reminder time.
func (s DaySlot) Configured() bool {
	return s.Goal > 0 && utils.IsClockTime(s.Time)
}

// Slot returns the goal/time/label triple for a weekday, 0=Sunday through
// 6=Saturday, matching time.Weekday numbering.
func (p *WritingPlan) Slot(weekday int) DaySlot {
	table := [7]DaySlot{
		{p.SundayGoal, p.SundayTime, "Sunday"},
		{p.MondayGoal, p.MondayTime, "Monday"},
		{p.TuesdayGoal, p.TuesdayTime, "Tuesday"},
		{p.WednesdayGoal, p.WednesdayTime, "Wednesday"},
		{p.ThursdayGoal, p.ThursdayTime, "Thursday"},
		{p.FridayGoal, p.FridayTime, "Friday"},
		{p.SaturdayGoal, p.SaturdayTime, "Saturday"},
	}
	return table[weekday]
}
