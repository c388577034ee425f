package models

import "gorm.io/datatypes"

// Workout is a single diary entry owned by a user.
type Workout struct {
	BaseModel

	UserID      string         `gorm:"type:varchar(36);not null;index:idx_workouts_user_date" json:"userId"`
	Date        datatypes.Date `gorm:"not null;index:idx_workouts_user_date" json:"date"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
}
