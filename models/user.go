package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"thevoices-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`

	Role string `gorm:"type:varchar(20);not null;default:'USER'" json:"role"` // 'USER' or 'FOUNDING_WRITER'

	// IANA timezone identifier (e.g. "America/New_York"). A user without a
	// timezone never receives writing reminders.
	Timezone string `json:"timezone"`

	Phone string `json:"phone,omitempty"` // optional, enables SMS delivery
	Bio   string `gorm:"type:text" json:"bio,omitempty"`
	Img   string `json:"img,omitempty"`

	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Custom JSONB type for push subscription payloads
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
