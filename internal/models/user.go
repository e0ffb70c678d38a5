package models

import (
	"strings"
	"time"
)

// User is an account as resolved by the session gate. PhoneNumber and
// HomeAddress start empty; checkout prompts for them and persists them back
// onto the profile.
type User struct {
	ID           string    `json:"user_id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name         string    `json:"name" validate:"required"`
	Picture      string    `json:"picture"`
	PhoneNumber  string    `json:"phone_number"`
	HomeAddress  string    `json:"home_address"`
	IsAdmin      bool      `json:"is_admin"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // only set for locally provisioned accounts
	CreatedAt    time.Time `json:"created_at"`
}

// HasContactInfo reports whether checkout can proceed without prompting for
// a phone number and delivery address.
func (u *User) HasContactInfo() bool {
	return strings.TrimSpace(u.PhoneNumber) != "" && strings.TrimSpace(u.HomeAddress) != ""
}
