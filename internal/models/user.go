package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an operator account. Password holds the bcrypt hash and never
// serializes; RefreshToken is cleared on logout.
type User struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"_id"`
	Username     string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PhoneNumber  string    `gorm:"size:32" json:"phone_number"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	RefreshToken string    `gorm:"size:512" json:"-"`
	IsActive     bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedBy    string    `gorm:"type:char(36)" json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
