package models

import "time"

// LeaderboardSnapshot is one row of the materialized admin leaderboard,
// refreshed by the snapshot service after every classroom sync. It is the
// preferred source for leaderboard reads; when empty the service falls back
// to aggregating raw grades.
type LeaderboardSnapshot struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	GithubUsername       string     `gorm:"size:255;uniqueIndex;not null" json:"github_username"`
	TotalScore           int        `gorm:"not null" json:"total_score"`
	TotalPossible        int        `gorm:"not null" json:"total_possible"`
	Percentage           int        `gorm:"not null" json:"percentage"`
	AssignmentsCompleted int        `gorm:"not null" json:"assignments_completed"`
	ResolutionTimeHours  *int       `json:"resolution_time_hours"`
	HasFork              bool       `gorm:"not null" json:"has_fork"`
	ForkCreatedAt        *time.Time `json:"fork_created_at"`
	LastUpdatedAt        *time.Time `json:"last_updated_at"`
	RankingPosition      int        `gorm:"not null" json:"ranking_position"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TableName keeps the table name the classroom sync has always written to.
func (LeaderboardSnapshot) TableName() string {
	return "admin_leaderboard"
}
