package models

import "time"

// Review assignment statuses. The calling convention moves a review forward
// only (pending, in_progress, completed) but the data layer accepts any of
// the three as an update target.
const (
	ReviewStatusPending    = "pending"
	ReviewStatusInProgress = "in_progress"
	ReviewStatusCompleted  = "completed"
)

// Quality score bounds, inclusive.
const (
	MinQualityScore = 1
	MaxQualityScore = 10
)

// Review comment types.
const (
	CommentTypeGeneral       = "general"
	CommentTypeCodeQuality   = "code_quality"
	CommentTypeFunctionality = "functionality"
	CommentTypeDocumentation = "documentation"
	CommentTypeSuggestion    = "suggestion"
)

// Review comment priorities.
const (
	CommentPriorityLow    = "low"
	CommentPriorityMedium = "medium"
	CommentPriorityHigh   = "high"
)

// IsValidReviewStatus reports whether status is one of the known states.
func IsValidReviewStatus(status string) bool {
	switch status {
	case ReviewStatusPending, ReviewStatusInProgress, ReviewStatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidCommentType reports whether the comment type is known.
func IsValidCommentType(commentType string) bool {
	switch commentType {
	case CommentTypeGeneral, CommentTypeCodeQuality, CommentTypeFunctionality,
		CommentTypeDocumentation, CommentTypeSuggestion:
		return true
	default:
		return false
	}
}

// IsValidCommentPriority reports whether the priority is known.
func IsValidCommentPriority(priority string) bool {
	switch priority {
	case CommentPriorityLow, CommentPriorityMedium, CommentPriorityHigh:
		return true
	default:
		return false
	}
}

// ReviewAssignment links a reviewer to one student's work on one assignment.
// Several reviewers may be assigned to the same (student, assignment) pair.
// CompletedAt is non-nil exactly while Status is completed.
type ReviewAssignment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	StudentUsername  string     `gorm:"size:255;not null;index" json:"student_username"`
	ReviewerUsername string     `gorm:"size:255;not null" json:"reviewer_username"`
	AssignmentName   string     `gorm:"size:255;not null" json:"assignment_name"`
	Status           string     `gorm:"size:32;not null;default:pending" json:"status"`
	CodeQualityScore *int       `json:"code_quality_score"`
	AssignedAt       time.Time  `gorm:"not null" json:"assigned_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ReviewComment is free-text reviewer feedback. Comments are immutable once
// created; there is no update path.
type ReviewComment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	StudentUsername  string    `gorm:"size:255;not null;index" json:"student_username"`
	ReviewerUsername string    `gorm:"size:255;not null" json:"reviewer_username"`
	AssignmentName   string    `gorm:"size:255;not null" json:"assignment_name"`
	Comment          string    `gorm:"type:text;not null" json:"comment"`
	CommentType      string    `gorm:"size:32;not null;default:general" json:"comment_type"`
	Priority         string    `gorm:"size:16;not null;default:medium" json:"priority"`
	CreatedAt        time.Time `json:"created_at"`
}
