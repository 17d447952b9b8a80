package dto

import (
	"github.com/b4os-dev/classboard-api/internal/models"
)

// LeaderboardEntry is the derived per-student row returned to clients.
// It is recomputed on every request and never persisted.
type LeaderboardEntry struct {
	GithubUsername       string `json:"github_username"`
	TotalScore           int    `json:"total_score"`
	TotalPossible        int    `json:"total_possible"`
	Percentage           int    `json:"percentage"`
	AssignmentsCompleted int    `json:"assignments_completed"`
	ResolutionTimeHours  *int   `json:"resolution_time_hours,omitempty"`
	HasFork              bool   `json:"has_fork"`
	RankingPosition      int    `json:"ranking_position,omitempty"`
}

// NewLeaderboardEntry converts a materialized snapshot row into the client DTO.
func NewLeaderboardEntry(snapshot models.LeaderboardSnapshot) LeaderboardEntry {
	return LeaderboardEntry{
		GithubUsername:       snapshot.GithubUsername,
		TotalScore:           snapshot.TotalScore,
		TotalPossible:        snapshot.TotalPossible,
		Percentage:           snapshot.Percentage,
		AssignmentsCompleted: snapshot.AssignmentsCompleted,
		ResolutionTimeHours:  snapshot.ResolutionTimeHours,
		HasFork:              snapshot.HasFork,
		RankingPosition:      snapshot.RankingPosition,
	}
}

// OverviewResponse joins everything the dashboard page needs in one payload.
// Reviews is keyed by student username and may be empty when the optional
// review branch of the fan-out failed.
type OverviewResponse struct {
	Leaderboard []LeaderboardEntry             `json:"leaderboard"`
	Stats       StatsSummary                   `json:"stats"`
	Assignments []AssignmentResponse           `json:"assignments"`
	Reviews     map[string]ReviewStatusSummary `json:"reviews"`
}
