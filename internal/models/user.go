package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// AccountStatus captures the confirmation state of an account.
type AccountStatus string

const (
	// AccountPending marks an account that registered but has not confirmed its email yet.
	AccountPending AccountStatus = "pending"
	// AccountConfirmed marks an account whose email address has been confirmed.
	AccountConfirmed AccountStatus = "confirmed"
)

// User is a registered account of the workout diary.
type User struct {
	BaseModel

	Email     string `gorm:"uniqueIndex;not null;size:320" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	Age       int    `gorm:"not null" json:"age"`

	Status      AccountStatus `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	ConfirmedAt *time.Time    `json:"confirmedAt,omitempty"`

	Codes    []OneTimeCode `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Workouts []Workout     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// NormalizeEmail returns the canonical lower-case form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsConfirmed reports whether the account completed email confirmation.
func (u *User) IsConfirmed() bool {
	return u != nil && u.Status == AccountConfirmed
}

// BeforeSave keeps the email normalised on every write.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	if u.Status == "" {
		u.Status = AccountPending
	}
	return nil
}

// AfterFind guards reads against rows written before normalisation was enforced.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}
