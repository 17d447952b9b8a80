package models

import "time"

// Assignment represents a classroom assignment definition. PointsAvailable
// is nil when the upstream grading API never reported a capacity for it.
type Assignment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	PointsAvailable *int      `json:"points_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
