package models

import "time"

// Grade records the current standing of one student on one assignment as
// synced from GitHub Classroom. PointsAwarded is nil while the submission
// has not been graded; the fork timestamps mark when the student's
// per-assignment workspace was created and last touched.
type Grade struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	GithubUsername string     `gorm:"size:255;not null;index:idx_grades_student_assignment" json:"github_username"`
	AssignmentName string     `gorm:"size:255;not null;index:idx_grades_student_assignment" json:"assignment_name"`
	PointsAwarded  *int       `json:"points_awarded"`
	ForkCreatedAt  *time.Time `json:"fork_created_at"`
	ForkUpdatedAt  *time.Time `json:"fork_updated_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Accepted reports whether the student accepted the assignment fork.
// Acceptance, not a grade row, is the completion criterion.
func (g Grade) Accepted() bool {
	return g.ForkCreatedAt != nil
}
