package models

import "time"

// CodePurpose identifies which workflow a one-time code authorises.
type CodePurpose string

const (
	PurposeRegistrationConfirmation CodePurpose = "registration_confirmation"
	PurposePasswordReset            CodePurpose = "password_reset"
)

// Valid reports whether the purpose is one of the known workflows.
func (p CodePurpose) Valid() bool {
	switch p {
	case PurposeRegistrationConfirmation, PurposePasswordReset:
		return true
	default:
		return false
	}
}

// OneTimeCode stores the hash of an outstanding confirmation or password reset code.
// At most one row exists per (user, purpose); consuming a code deletes its row.
type OneTimeCode struct {
	BaseModel

	UserID    string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_one_time_codes_user_purpose" json:"userId"`
	Purpose   CodePurpose `gorm:"type:varchar(32);not null;uniqueIndex:idx_one_time_codes_user_purpose" json:"purpose"`
	CodeHash  string      `gorm:"not null;uniqueIndex;size:64" json:"-"`
	ExpiresAt time.Time   `gorm:"index" json:"expiresAt"`
}

// Expired reports whether the code is no longer usable at the given instant.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}
