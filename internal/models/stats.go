package models

import "time"

// ProgramStats is the materialized program-wide summary row. Like the
// leaderboard snapshot it is opportunistic: readers prefer it and recompute
// from raw grades when no row exists.
type ProgramStats struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TotalStudents    int       `gorm:"not null" json:"total_students"`
	TotalAssignments int       `gorm:"not null" json:"total_assignments"`
	TotalGrades      int       `gorm:"not null" json:"total_grades"`
	AvgScore         float64   `gorm:"not null" json:"avg_score"`
	CompletionRate   int       `gorm:"not null" json:"completion_rate"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName pins the legacy table name.
func (ProgramStats) TableName() string {
	return "dashboard_stats"
}
