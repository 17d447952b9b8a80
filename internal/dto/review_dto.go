package dto

import (
	"time"

	"github.com/b4os-dev/classboard-api/internal/models"
)

// AssignReviewerRequest creates a new review assignment. Assigning a second
// reviewer to the same (student, assignment) pair is allowed.
type AssignReviewerRequest struct {
	StudentUsername  string `json:"student_username" validate:"required,min=1,max=255"`
	ReviewerUsername string `json:"reviewer_username" validate:"required,min=1,max=255"`
	AssignmentName   string `json:"assignment_name" validate:"required,min=1,max=255"`
}

// UpdateReviewStatusRequest moves a review assignment to a new status.
type UpdateReviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}

// UpdateQualityScoreRequest rates the reviewed submission. Out-of-range
// scores are rejected, never clamped.
type UpdateQualityScoreRequest struct {
	Score int `json:"score" validate:"required,min=1,max=10"`
}

// AddReviewCommentRequest records immutable free-text reviewer feedback.
type AddReviewCommentRequest struct {
	StudentUsername  string `json:"student_username" validate:"required,min=1,max=255"`
	ReviewerUsername string `json:"reviewer_username" validate:"required,min=1,max=255"`
	AssignmentName   string `json:"assignment_name" validate:"required,min=1,max=255"`
	Comment          string `json:"comment" validate:"required,min=1"`
	CommentType      string `json:"comment_type" validate:"required,oneof=general code_quality functionality documentation suggestion"`
	Priority         string `json:"priority" validate:"required,oneof=low medium high"`
}

// ReviewAssignmentResponse is the serialized review assignment.
type ReviewAssignmentResponse struct {
	ID               uint       `json:"id"`
	StudentUsername  string     `json:"student_username"`
	ReviewerUsername string     `json:"reviewer_username"`
	AssignmentName   string     `json:"assignment_name"`
	Status           string     `json:"status"`
	CodeQualityScore *int       `json:"code_quality_score"`
	AssignedAt       time.Time  `json:"assigned_at"`
	CompletedAt      *time.Time `json:"completed_at"`
}

// NewReviewAssignmentResponse converts a model into a DTO.
func NewReviewAssignmentResponse(review models.ReviewAssignment) ReviewAssignmentResponse {
	return ReviewAssignmentResponse{
		ID:               review.ID,
		StudentUsername:  review.StudentUsername,
		ReviewerUsername: review.ReviewerUsername,
		AssignmentName:   review.AssignmentName,
		Status:           review.Status,
		CodeQualityScore: review.CodeQualityScore,
		AssignedAt:       review.AssignedAt,
		CompletedAt:      review.CompletedAt,
	}
}

// NewReviewAssignmentResponseSlice converts a slice of models into DTOs.
func NewReviewAssignmentResponseSlice(reviews []models.ReviewAssignment) []ReviewAssignmentResponse {
	responses := make([]ReviewAssignmentResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, NewReviewAssignmentResponse(review))
	}

	return responses
}

// ReviewCommentResponse is the serialized review comment.
type ReviewCommentResponse struct {
	ID               uint      `json:"id"`
	StudentUsername  string    `json:"student_username"`
	ReviewerUsername string    `json:"reviewer_username"`
	AssignmentName   string    `json:"assignment_name"`
	Comment          string    `json:"comment"`
	CommentType      string    `json:"comment_type"`
	Priority         string    `json:"priority"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewReviewCommentResponse converts a model into a DTO.
func NewReviewCommentResponse(comment models.ReviewComment) ReviewCommentResponse {
	return ReviewCommentResponse{
		ID:               comment.ID,
		StudentUsername:  comment.StudentUsername,
		ReviewerUsername: comment.ReviewerUsername,
		AssignmentName:   comment.AssignmentName,
		Comment:          comment.Comment,
		CommentType:      comment.CommentType,
		Priority:         comment.Priority,
		CreatedAt:        comment.CreatedAt,
	}
}

// NewReviewCommentResponseSlice converts a slice of models into DTOs.
func NewReviewCommentResponseSlice(comments []models.ReviewComment) []ReviewCommentResponse {
	responses := make([]ReviewCommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, NewReviewCommentResponse(comment))
	}

	return responses
}

// ReviewStatusSummary aggregates a student's reviewer records for display.
// HasReviewer answers "was a reviewer ever assigned"; ActiveReview answers
// "is a review currently open" — the dashboard shows both.
type ReviewStatusSummary struct {
	HasReviewer         bool       `json:"has_reviewer"`
	ActiveReview        bool       `json:"active_review"`
	LatestReviewer      string     `json:"latest_reviewer,omitempty"`
	LatestStatus        string     `json:"latest_status,omitempty"`
	LatestAssignedAt    *time.Time `json:"latest_assigned_at,omitempty"`
	AverageQualityScore *int       `json:"average_quality_score,omitempty"`
	QualityScoreCount   int        `json:"quality_score_count"`
	TotalReviews        int        `json:"total_reviews"`
	CompletedReviews    int        `json:"completed_reviews"`
}
