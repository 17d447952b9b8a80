package dto

import "github.com/b4os-dev/classboard-api/internal/models"

// StatsSummary carries the program-wide aggregate counters.
type StatsSummary struct {
	TotalStudents    int     `json:"total_students"`
	TotalAssignments int     `json:"total_assignments"`
	TotalGrades      int     `json:"total_grades"`
	AvgScore         float64 `json:"avg_score"`
	CompletionRate   int     `json:"completion_rate"`
}

// NewStatsSummary converts the materialized stats row into the client DTO.
func NewStatsSummary(stats models.ProgramStats) StatsSummary {
	return StatsSummary{
		TotalStudents:    stats.TotalStudents,
		TotalAssignments: stats.TotalAssignments,
		TotalGrades:      stats.TotalGrades,
		AvgScore:         stats.AvgScore,
		CompletionRate:   stats.CompletionRate,
	}
}
